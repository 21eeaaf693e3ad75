// Package codec converts editor documents to and from wire formats.
package codec

import (
	"fmt"
	"io"

	"nodework/internal/domain"
	"nodework/internal/viewport"
)

// Version is the document format written by this package
const Version = 1

// Document is the persisted part of an editor: the graph and the view box.
// Selection, hover and pointer state are never saved.
type Document struct {
	Version int               `json:"version"`
	Graph   domain.Graph      `json:"graph"`
	ViewBox *viewport.ViewBox `json:"viewbox,omitempty"`
}

// NewDocument creates a current-version document
func NewDocument(g domain.Graph, vb *viewport.ViewBox) *Document {
	return &Document{Version: Version, Graph: g, ViewBox: vb}
}

// Importer interface for importing documents from various formats
type Importer interface {
	Parse(r io.Reader) (*Document, error)
	Format() string
}

// Exporter interface for exporting documents to various formats
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Format() string
}

func checkVersion(v int) error {
	if v < 1 || v > Version {
		return fmt.Errorf("unsupported document version %d", v)
	}
	return nil
}
