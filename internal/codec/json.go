package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec handles the full JSON document used for persistence
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse decodes a document from JSON
func (c *JSONCodec) Parse(r io.Reader) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Export encodes doc as JSON
func (c *JSONCodec) Export(doc *Document, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Marshal encodes doc into a byte slice
func (c *JSONCodec) Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Export(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document from data
func (c *JSONCodec) Unmarshal(data []byte) (*Document, error) {
	return c.Parse(bytes.NewReader(data))
}
