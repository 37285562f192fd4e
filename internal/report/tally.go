package report

// Tally is the aggregate of a validation run.
type Tally struct {
	Passed       int
	Failed       int
	PassedChecks []string
	FailedChecks []string
	Messages     []string
}

// Total returns the number of evaluated items across all checks.
func (t Tally) Total() int {
	return t.Passed + t.Failed
}

// OK reports whether no check recorded a violation.
func (t Tally) OK() bool {
	return t.Failed == 0
}

// Summarize folds reports into a Tally, preserving report and message order.
func Summarize(reports []*Report) Tally {
	t := Tally{
		PassedChecks: []string{},
		FailedChecks: []string{},
		Messages:     []string{},
	}
	for _, r := range reports {
		if r == nil {
			continue
		}
		t.Passed += r.Passed
		t.Failed += r.Failed
		if r.OK() {
			t.PassedChecks = append(t.PassedChecks, r.Name)
		} else {
			t.FailedChecks = append(t.FailedChecks, r.Name)
		}
		t.Messages = append(t.Messages, r.Messages...)
	}
	return t
}
