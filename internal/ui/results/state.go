package results

import (
	"odsearch/internal/domain"
)

// State is the observable state of a results view
type State struct {
	Phase            domain.Phase
	ActiveTab        domain.Tab
	Concepts         []domain.Concept
	Annotations      []domain.Annotation
	TotalConcepts    int
	TotalAnnotations int
	Err              error // set only in PhaseFailed
}

// Loading reports whether the spinner is shown
func (s State) Loading() bool {
	return s.Phase == domain.PhaseLoading
}

// Count returns the result count shown in a tab's badge
func (s State) Count(tab domain.Tab) int {
	if tab == domain.TabAnnotations {
		return s.TotalAnnotations
	}
	return s.TotalConcepts
}

// TabDisabled reports whether a tab can be selected. A tab with no results is disabled.
func (s State) TabDisabled(tab domain.Tab) bool {
	return s.Count(tab) == 0
}

// Len returns the number of listed results under tab
func (s State) Len(tab domain.Tab) int {
	if tab == domain.TabAnnotations {
		return len(s.Annotations)
	}
	return len(s.Concepts)
}

func newState() State {
	return State{
		Phase:       domain.PhaseIdle,
		ActiveTab:   domain.DefaultTab,
		Concepts:    []domain.Concept{},
		Annotations: []domain.Annotation{},
	}
}
