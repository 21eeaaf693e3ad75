package codec

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"nodework/internal/domain"
	"nodework/internal/geometry"
	"nodework/internal/library"
)

// YAMLCodec handles the hand-editable YAML form of a graph. Only node keys,
// ids and positions are written; sockets are rebuilt from the library on
// import.
type YAMLCodec struct {
	lib *library.Library
}

// NewYAMLCodec creates a YAML codec resolving node keys against lib
func NewYAMLCodec(lib *library.Library) *YAMLCodec {
	return &YAMLCodec{lib: lib}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument represents the YAML structure for graph data
type yamlDocument struct {
	Version     int              `yaml:"version"`
	Nodes       []yamlNode       `yaml:"nodes"`
	Connections []yamlConnection `yaml:"connections"`
}

type yamlNode struct {
	ID       string          `yaml:"id"`
	Key      string          `yaml:"key"`
	Label    string          `yaml:"label,omitempty"`
	Position geometry.Vector `yaml:"position"`
}

type yamlConnection struct {
	ID   string `yaml:"id,omitempty"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Parse imports a graph from YAML. Nodes with unknown keys are an error;
// connections are kept as written and left for the editor to validate.
func (c *YAMLCodec) Parse(r io.Reader) (*Document, error) {
	var yd yamlDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yd); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if yd.Version == 0 {
		yd.Version = Version
	}
	if err := checkVersion(yd.Version); err != nil {
		return nil, err
	}

	g := domain.NewGraph()

	// Convert nodes
	for _, yn := range yd.Nodes {
		def, err := c.lib.Lookup(yn.Key)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", yn.ID, err)
		}
		id := yn.ID
		switch {
		case library.IsOutput(def):
			if id != "" && id != domain.OutputNodeID {
				return nil, fmt.Errorf("node %s: output node must have id %s", id, domain.OutputNodeID)
			}
			id = domain.OutputNodeID
		case id == domain.OutputNodeID:
			return nil, fmt.Errorf("node %s: id is reserved for the output node, got key %s", id, yn.Key)
		case id == "":
			id = domain.NewNodeID(def)
		}
		if _, dup := g.Node(id); dup {
			return nil, fmt.Errorf("duplicate node id %s", id)
		}
		g.PutNode(domain.NewNode(id, def, yn.Position))
	}

	// Convert connections
	for _, yc := range yd.Connections {
		conn := domain.Connection{ID: yc.ID, From: yc.From, To: yc.To}
		if conn.ID == "" {
			conn.ID = uuid.NewString()
		}
		g.Connections = append(g.Connections, conn)
	}

	return NewDocument(g, nil), nil
}

// Export writes the finalized part of doc's graph as YAML
func (c *YAMLCodec) Export(doc *Document, w io.Writer) error {
	yd := yamlDocument{
		Version:     Version,
		Nodes:       make([]yamlNode, 0, len(doc.Graph.Nodes)),
		Connections: make([]yamlConnection, 0, len(doc.Graph.Connections)),
	}

	// Convert nodes
	for _, n := range doc.Graph.Nodes {
		yd.Nodes = append(yd.Nodes, yamlNode{
			ID:       n.ID,
			Key:      n.Key,
			Label:    n.Label,
			Position: n.Position,
		})
	}

	// Convert connections
	for _, conn := range doc.Graph.Finalized() {
		yd.Connections = append(yd.Connections, yamlConnection{
			ID:   conn.ID,
			From: conn.From,
			To:   conn.To,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
