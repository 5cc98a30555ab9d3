package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a record identifier. The API sends strings, but numeric ids are accepted too.
type ID string

// UnmarshalJSON accepts a JSON string or number
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Schema identifies which kind of record a result is
type Schema string

const (
	SchemaConcept    Schema = "concept"
	SchemaAnnotation Schema = "annotation"
)

// Concept is a search result from the concept index
type Concept struct {
	ID          ID     `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Raw json.RawMessage `json:"-"` // record as received, shown in the details pager
}

// FullName returns the name shown in result rows
func (c Concept) FullName() string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.ID)
}

// Annotation is a search result from the annotation index
type Annotation struct {
	Language    string `json:"language"`
	Package     string `json:"package"`
	ID          ID     `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// FullName returns language/package/id, with the display name appended when set
func (a Annotation) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Language, a.Package, string(a.ID)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	full := strings.Join(parts, "/")
	if a.Name != "" {
		if full == "" {
			return a.Name
		}
		return fmt.Sprintf("%s (%s)", full, a.Name)
	}
	return full
}

// Tab is one of the two result tabs
type Tab string

const (
	TabConcepts    Tab = "concepts"
	TabAnnotations Tab = "annotations"
)

// DefaultTab is active on mount even when it has no results
const DefaultTab = TabConcepts

// Tabs lists the tabs in display order
var Tabs = []Tab{TabConcepts, TabAnnotations}

// Title returns the tab label
func (t Tab) Title() string {
	switch t {
	case TabAnnotations:
		return "Annotations"
	default:
		return "Concepts"
	}
}

// Schema returns the record schema listed under the tab
func (t Tab) Schema() Schema {
	if t == TabAnnotations {
		return SchemaAnnotation
	}
	return SchemaConcept
}

// Phase is the state of a search cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed // only reachable when errors are surfaced
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}
