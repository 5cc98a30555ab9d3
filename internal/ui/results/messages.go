package results

import (
	"odsearch/internal/domain"
)

// conceptsFetchedMsg carries the concept fetch outcome of one search cycle
type conceptsFetchedMsg struct {
	generation uint64
	concepts   []domain.Concept
	err        error
}

// annotationsFetchedMsg carries the annotation fetch outcome of one search cycle
type annotationsFetchedMsg struct {
	generation  uint64
	annotations []domain.Annotation
	err         error
}

// OpenRecordMsg asks the shell to show a record in the pager
type OpenRecordMsg struct {
	Title   string
	Content string
}
