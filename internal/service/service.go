package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"nodework/internal/codec"
	"nodework/internal/domain"
	"nodework/internal/editor"
	"nodework/internal/library"
	"nodework/internal/observability"
	"nodework/internal/repository"
	"nodework/internal/view"
)

// Options configures an EditorService
type Options struct {
	// Key is the document key the editor is saved under
	Key string
	// Autosave saves after every action that completes a change
	Autosave bool
}

// State is what a client needs to redraw after an action
type State struct {
	View     *view.Node    `json:"view"`
	Output   library.Value `json:"output"`
	Mode     string        `json:"mode"`
	Rejected []string      `json:"rejected,omitempty"`
}

// EditorService hosts one editor session. Actions are applied one at a time
// in arrival order.
type EditorService struct {
	mu    sync.Mutex
	model editor.Model
	dirty bool

	store    repository.Store
	snapshot *codec.JSONCodec
	yaml     *codec.YAMLCodec
	eventBus *EventBus
	metrics  *observability.Collector
	logger   *zap.Logger
	opts     Options
}

// NewEditorService creates a service around model
func NewEditorService(model editor.Model, store repository.Store, eventBus *EventBus, metrics *observability.Collector, logger *zap.Logger, opts Options) *EditorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &EditorService{
		model:    model.WithLogger(logger),
		store:    store,
		snapshot: codec.NewJSONCodec(),
		yaml:     codec.NewYAMLCodec(model.Library),
		eventBus: eventBus,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
	s.observeGraph()
	return s
}

// Dispatch applies a to the editor and publishes the new state
func (s *EditorService) Dispatch(ctx context.Context, a editor.Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	before := s.model
	s.model = editor.Update(before, a)

	s.metrics.Actions.WithLabelValues(a.Kind()).Inc()
	s.metrics.EvalDuration.Observe(time.Since(start).Seconds())

	var rejected []string
	if s.model.DAG != before.DAG {
		s.metrics.Evaluations.Inc()
		s.metrics.CycleRejections.Add(float64(len(s.model.Rejected)))
		rejected = s.model.Rejected
	}
	if graphChanged(before.Graph, s.model.Graph) {
		s.dirty = true
	}
	s.observeGraph()

	state := s.state(rejected)
	s.eventBus.Publish(Event{Type: EventModelUpdated, Payload: state})

	if s.opts.Autosave && s.dirty && settles(a) {
		if err := s.save(ctx); err != nil {
			return state, err
		}
	}
	return state, nil
}

// State returns the current state
func (s *EditorService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(nil)
}

// Model returns the current editor model. The caller must not mutate it.
func (s *EditorService) Model() editor.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Definitions lists the node definitions that can be spawned
func (s *EditorService) Definitions() []library.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Definitions()
}

// Save writes the editor state to the store
func (s *EditorService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// Load restores the editor state from the store. It reports false, with no
// error, when nothing has been saved under the key yet.
func (s *EditorService) Load(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load(ctx, s.opts.Key)
	if errors.Is(err, repository.ErrNotFound) {
		s.metrics.RecordStore("load", nil)
		s.logger.Info("no saved editor state", zap.String("key", s.opts.Key))
		return false, nil
	}
	s.metrics.RecordStore("load", err)
	if err != nil {
		return false, fmt.Errorf("load editor state: %w", err)
	}

	doc, err := s.snapshot.Unmarshal(data)
	if err != nil {
		return false, fmt.Errorf("decode editor state %s: %w", s.opts.Key, err)
	}

	state := s.restore(doc)
	s.dirty = false
	s.eventBus.Publish(Event{Type: EventModelLoaded, Payload: state})
	s.logger.Info("editor state loaded",
		zap.String("key", s.opts.Key),
		zap.Int("nodes", len(s.model.Graph.Nodes)),
		zap.Int("connections", len(s.model.Graph.Connections)))
	return true, nil
}

// ExportJSON writes the persisted form of the editor to w
func (s *EditorService) ExportJSON(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Export(s.document(), w)
}

// ExportYAML writes the graph to w as YAML
func (s *EditorService) ExportYAML(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yaml.Export(s.document(), w)
}

// ImportYAML replaces the graph with one read from r
func (s *EditorService) ImportYAML(ctx context.Context, r io.Reader) (State, error) {
	doc, err := s.yaml.Parse(r)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.restore(doc)
	s.dirty = true
	s.eventBus.Publish(Event{Type: EventModelLoaded, Payload: state})

	if s.opts.Autosave {
		if err := s.save(ctx); err != nil {
			return state, err
		}
	}
	return state, nil
}

func (s *EditorService) save(ctx context.Context) error {
	data, err := s.snapshot.Marshal(s.document())
	if err != nil {
		return fmt.Errorf("encode editor state: %w", err)
	}

	err = s.store.Save(ctx, s.opts.Key, data)
	s.metrics.RecordStore("save", err)
	if err != nil {
		return fmt.Errorf("save editor state: %w", err)
	}

	s.dirty = false
	s.eventBus.Publish(Event{Type: EventModelSaved, Payload: map[string]string{"key": s.opts.Key}})
	s.logger.Debug("editor state saved", zap.String("key", s.opts.Key), zap.Int("bytes", len(data)))
	return nil
}

// restore replaces graph and view box with doc, returning the new state
func (s *EditorService) restore(doc *codec.Document) State {
	s.model = s.model.WithGraph(doc.Graph)
	if doc.ViewBox != nil {
		s.model = s.model.WithViewBox(*doc.ViewBox)
	}

	s.metrics.Evaluations.Inc()
	s.metrics.CycleRejections.Add(float64(len(s.model.Rejected)))
	s.observeGraph()
	return s.state(s.model.Rejected)
}

func (s *EditorService) document() *codec.Document {
	g := s.model.Graph.Clone()
	g.Connections = g.Finalized()
	vb := s.model.ViewBox
	return codec.NewDocument(g, &vb)
}

func (s *EditorService) state(rejected []string) State {
	return State{
		View:     view.Render(s.model),
		Output:   s.model.Output,
		Mode:     s.model.Mode.String(),
		Rejected: slices.Clone(rejected),
	}
}

func (s *EditorService) observeGraph() {
	s.metrics.Nodes.Set(float64(len(s.model.Graph.Nodes)))
	s.metrics.Connections.Set(float64(len(s.model.Graph.Finalized())))
}

// settles reports whether a ends a gesture, after which the graph is worth
// saving
func settles(a editor.Action) bool {
	switch a.(type) {
	case editor.PointerReleased, editor.NodeReleased, editor.CanvasReleased,
		editor.KeyPressed, editor.MenuItemClicked:
		return true
	default:
		return false
	}
}

// graphChanged compares the persisted parts of two graphs
func graphChanged(a, b domain.Graph) bool {
	sameNodes := slices.EqualFunc(a.Nodes, b.Nodes, func(x, y domain.Node) bool {
		return x.ID == y.ID && x.Key == y.Key && x.Position == y.Position
	})
	if !sameNodes {
		return true
	}
	return !slices.EqualFunc(a.Finalized(), b.Finalized(), func(x, y domain.Connection) bool {
		return x.ID == y.ID && x.From == y.From && x.To == y.To
	})
}
