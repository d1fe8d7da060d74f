package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"hostident/internal/machine"
)

// JSONCodec handles JSON export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Export writes the identity as indented JSON
func (c *JSONCodec) Export(id machine.Identity, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(id); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
