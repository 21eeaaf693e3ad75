package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"nodework/internal/library"
	"nodework/internal/service"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// EditorHandler handles editor API requests
type EditorHandler struct {
	svc    *service.EditorService
	logger *zap.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(svc *service.EditorService, logger *zap.Logger) *EditorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorHandler{svc: svc, logger: logger}
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// DefinitionResponse describes one spawnable node definition
type DefinitionResponse struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Domain string   `json:"domain"`
	Inputs []string `json:"inputs"`
	Output bool     `json:"output"`
}

// Dispatch applies one action and returns the resulting state
func (h *EditorHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, "Invalid action", err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.svc.Dispatch(r.Context(), req.Action())
	if err != nil {
		// the action was applied; only persisting it failed
		h.logger.Error("failed to autosave", zap.String("action", req.Type), zap.Error(err))
		h.writeError(w, "Failed to save", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, state, http.StatusOK)
}

// GetModel returns the current state
func (h *EditorHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.State(), http.StatusOK)
}

// GetLibrary lists the node definitions that can be spawned
func (h *EditorHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	defs := h.svc.Definitions()
	out := make([]DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		inputs := def.Inputs()
		if inputs == nil {
			inputs = []string{}
		}
		out = append(out, DefinitionResponse{
			Key:    def.Key(),
			Label:  def.Label(),
			Domain: def.Domain().String(),
			Inputs: inputs,
			Output: library.IsOutput(def),
		})
	}
	h.writeJSON(w, out, http.StatusOK)
}

// Save persists the editor state
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Save(r.Context()); err != nil {
		h.logger.Error("failed to save", zap.Error(err))
		h.writeError(w, "Failed to save", err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]string{"status": "saved"}, http.StatusOK)
}

// Load restores the last saved editor state
func (h *EditorHandler) Load(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load", zap.Error(err))
		h.writeError(w, "Failed to load", err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		h.writeError(w, "Not found", "nothing has been saved yet", http.StatusNotFound)
		return
	}
	h.writeJSON(w, h.svc.State(), http.StatusOK)
}

// ExportYAML downloads the graph as YAML
func (h *EditorHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", "attachment; filename=nodework.yaml")
	if err := h.svc.ExportYAML(w); err != nil {
		h.logger.Error("failed to export YAML", zap.Error(err))
	}
}

// ExportJSON downloads the persisted document as JSON
func (h *EditorHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=nodework.json")
	if err := h.svc.ExportJSON(w); err != nil {
		h.logger.Error("failed to export JSON", zap.Error(err))
	}
}

// ImportYAML replaces the graph with an uploaded YAML document
func (h *EditorHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.ImportYAML(r.Context(), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, "Failed to import YAML", err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, state, http.StatusOK)
}

// Health reports liveness
func (h *EditorHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *EditorHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *EditorHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	h.writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}
