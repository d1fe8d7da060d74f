package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"hostident/internal/codec"
	"hostident/internal/domain"
	"hostident/internal/logging"
	"hostident/internal/machine"
)

const maxHistory = 1000

// IdentitySource returns the process identity. *machine.Registry satisfies it.
type IdentitySource interface {
	Initialized() bool
	Instance() machine.Identity
}

// SnapshotLister lists recorded identity snapshots, newest first
type SnapshotLister interface {
	List(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

// MachineHandler serves the machine identity API
type MachineHandler struct {
	identity IdentitySource
	history  SnapshotLister
	logger   *slog.Logger
}

// NewMachineHandler creates a new machine handler. history may be nil.
func NewMachineHandler(identity IdentitySource, history SnapshotLister) *MachineHandler {
	return &MachineHandler{
		identity: identity,
		history:  history,
		logger:   logging.Component("http"),
	}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HistoryResponse wraps a page of snapshots
type HistoryResponse struct {
	Count     int               `json:"count"`
	Snapshots []domain.Snapshot `json:"snapshots"`
}

// HealthResponse reports readiness
type HealthResponse struct {
	Status   string `json:"status"`
	Hostname string `json:"hostname,omitempty"`
}

// Register mounts the handler's routes on mux
func (h *MachineHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/machine", h.GetMachine)
	mux.HandleFunc("GET /api/machine/history", h.GetHistory)
	mux.HandleFunc("GET /healthz", h.Health)
}

// GetMachine returns the resolved identity in the requested format
func (h *MachineHandler) GetMachine(w http.ResponseWriter, r *http.Request) {
	if !h.identity.Initialized() {
		h.writeError(w, "Identity not resolved", "", http.StatusServiceUnavailable)
		return
	}

	exporter, err := codec.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	if ct, ok := exporter.(codec.ContentTyper); ok {
		w.Header().Set("Content-Type", ct.ContentType())
	}
	w.WriteHeader(http.StatusOK)
	if err := exporter.Export(h.identity.Instance(), w); err != nil {
		h.logger.Error("failed to export identity", "format", exporter.Format(), "err", err)
	}
}

// GetHistory returns recorded snapshots, newest first
func (h *MachineHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, "History not available", "no snapshot store configured", http.StatusNotFound)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeError(w, "Invalid limit", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistory)
	}

	snapshots, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list snapshots", "err", err)
		h.writeError(w, "Failed to list snapshots", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, HistoryResponse{Count: len(snapshots), Snapshots: snapshots}, http.StatusOK)
}

// Health reports ok once the identity is resolved
func (h *MachineHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.identity.Initialized() {
		h.writeJSON(w, HealthResponse{Status: "starting"}, http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, HealthResponse{Status: "ok", Hostname: h.identity.Instance().Hostname}, http.StatusOK)
}

func (h *MachineHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(h.logger, w, data, statusCode)
}

func (h *MachineHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(h.logger, w, ErrorResponse{Error: error, Details: details}, statusCode)
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON", "err", err)
	}
}
