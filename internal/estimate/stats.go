// Package estimate counts words in the DKGW corpus and measures progress
// toward the corpus word goal.
package estimate

import "fmt"

// DefaultGoal is the corpus target word count.
const DefaultGoal int64 = 1_000_000_000

// Stats accumulates word counts per section.
type Stats struct {
	Goal  int64
	Total int64

	counts map[string]int64
	order  []string
}

// NewStats creates an empty Stats for the given goal.
// A non-positive goal falls back to DefaultGoal.
func NewStats(goal int64) *Stats {
	if goal <= 0 {
		goal = DefaultGoal
	}
	return &Stats{Goal: goal, counts: make(map[string]int64)}
}

// AddToSection adds count words to section and to the total.
// Sections are remembered in the order they were first added.
func (s *Stats) AddToSection(section string, count int64) error {
	if count < 0 {
		return fmt.Errorf("negative word count %d for section %s", count, section)
	}
	if _, ok := s.counts[section]; !ok {
		s.order = append(s.order, section)
	}
	s.counts[section] += count
	s.Total += count
	return nil
}

// Sections returns section names in insertion order.
func (s *Stats) Sections() []string {
	return append([]string(nil), s.order...)
}

// SectionCount returns the words counted for section.
func (s *Stats) SectionCount(section string) (int64, bool) {
	n, ok := s.counts[section]
	return n, ok
}

// PercentageOfGoal returns the share of the goal, in percent, reached by
// section. The second result is false for an unknown section.
func (s *Stats) PercentageOfGoal(section string) (float64, bool) {
	n, ok := s.counts[section]
	if !ok {
		return 0, false
	}
	return s.percent(n), true
}

// TotalPercentageOfGoal returns the share of the goal reached by all sections.
func (s *Stats) TotalPercentageOfGoal() float64 {
	return s.percent(s.Total)
}

func (s *Stats) percent(n int64) float64 {
	return float64(n) * 100 / float64(s.Goal)
}
