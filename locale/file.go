package locale

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile reads and parses a JSON locale file.
// Malformed JSON is a hard error; the pipeline never works with a
// partially parsed document.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses JSON locale data into a Document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if doc == nil {
		doc = make(Document)
	}
	return doc, nil
}

// Marshal serializes a Document as 2-space indented JSON with a trailing
// newline, matching the layout of hand-edited locale files.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes a Document to path as indented JSON, creating parent
// directories as needed.
func WriteFile(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
