package domain

import (
	"encoding/json"
	"fmt"
)

// DecodeConcepts parses a JSON array of concepts, keeping each raw record
func DecodeConcepts(data []byte) ([]Concept, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse concepts: %w", err)
	}
	concepts := make([]Concept, 0, len(raws))
	for i, raw := range raws {
		var c Concept
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("failed to parse concept %d: %w", i, err)
		}
		c.Raw = raw
		concepts = append(concepts, c)
	}
	return concepts, nil
}

// DecodeAnnotations parses a JSON array of annotations, keeping each raw record
func DecodeAnnotations(data []byte) ([]Annotation, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse annotations: %w", err)
	}
	annotations := make([]Annotation, 0, len(raws))
	for i, raw := range raws {
		var a Annotation
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse annotation %d: %w", i, err)
		}
		a.Raw = raw
		annotations = append(annotations, a)
	}
	return annotations, nil
}
