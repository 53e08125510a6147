package triple

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON serializes triples as an object-per-triple array, overwriting
// any existing file at path.
func WriteJSON(path string, triples []Triple) error {
	if triples == nil {
		triples = []Triple{}
	}
	data, err := json.MarshalIndent(triples, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding triples: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON parses a file written by WriteJSON, preserving order.
func ReadJSON(path string) ([]Triple, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var triples []Triple
	if err := json.Unmarshal(data, &triples); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return triples, nil
}
