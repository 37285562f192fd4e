// Package report holds the outcome of a single corpus check.
package report

// Report accumulates the result of one named check.
// A check can pass some items and fail others, so outcomes are counted
// rather than collapsed into a single boolean.
type Report struct {
	// Name is the human-readable check name (e.g., "Auxiliary files").
	Name string `json:"name" yaml:"name"`
	// Passed is the number of items that satisfied the check.
	Passed int `json:"passed" yaml:"passed"`
	// Failed is the number of rule violations found.
	Failed int `json:"failed" yaml:"failed"`
	// Messages holds one diagnostic per violation, in discovery order.
	Messages []string `json:"messages" yaml:"messages"`
}

// New creates an empty report for the named check.
func New(name string) *Report {
	return &Report{Name: name, Messages: []string{}}
}

// Pass records n passing items.
func (r *Report) Pass(n int) {
	r.Passed += n
}

// Fail records one violation with its diagnostic message.
func (r *Report) Fail(msg string) {
	r.Failed++
	r.Messages = append(r.Messages, msg)
}

// Add merges sub into r. The name of r is kept.
// A nil sub is ignored.
func (r *Report) Add(sub *Report) *Report {
	if sub == nil {
		return r
	}
	r.Passed += sub.Passed
	r.Failed += sub.Failed
	r.Messages = append(r.Messages, sub.Messages...)
	return r
}

// OK reports whether the check found no violations.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Total returns the number of items evaluated.
func (r *Report) Total() int {
	return r.Passed + r.Failed
}

// Clone returns a deep copy of r.
func (r *Report) Clone() *Report {
	c := *r
	c.Messages = append([]string{}, r.Messages...)
	return &c
}

// Combine returns a new report holding the counts and messages of a followed
// by b. Neither input is modified. The result takes the name of a.
func Combine(a, b *Report) *Report {
	var out *Report
	switch {
	case a != nil:
		out = a.Clone()
	case b != nil:
		out = New(b.Name)
	default:
		return New("")
	}
	return out.Add(b)
}
