package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

// WriteState saves the full document as indented JSON so a later export run
// can regenerate artifacts without re-running discovery.
func WriteState(path string, doc *script.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document state: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write document state: %w", err)
	}
	return nil
}

// ReadState loads a document saved by WriteState.
func ReadState(path string) (*script.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document state: %w", err)
	}
	var doc script.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document state: %w", err)
	}
	return &doc, nil
}
