package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/jusunglee/mta-mcp/internal/models"
	"github.com/jusunglee/mta-mcp/pkg/mta"
)

// Handler handles HTTP requests
type Handler struct {
	client   mta.Client
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler
func NewHandler(client mta.Client) *Handler {
	return &Handler{client: client, validate: validator.New()}
}

// RegisterRoutes registers all routes. OPTIONS is matched so preflights
// reach CORSMiddleware.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", h.handleHealth).Methods("GET", "OPTIONS")
	r.HandleFunc("/next-train", h.handleNextTrain).Methods("GET", "OPTIONS")
}

// IndexResponse describes the service
type IndexResponse struct {
	Title string   `json:"title"`
	Tool  string   `json:"tool"`
	MCP   string   `json:"mcp"`
	Feeds []string `json:"feeds"`
}

// HealthResponse reports readiness
type HealthResponse struct {
	Status            string `json:"status"`
	StaticDataUpdated string `json:"static_data_updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, IndexResponse{
		Title: ServerName,
		Tool:  ToolName,
		MCP:   "/mcp",
		Feeds: h.client.FeedIDs(),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if updated := h.client.GetLastStaticUpdate(); !updated.IsZero() {
		resp.StaticDataUpdated = updated.Format(time.RFC3339)
	}
	h.writeJSON(w, resp)
}

// handleNextTrain answers with the plain report text. Acquisition failures
// map to 502; no-match and empty-feed answers are still 200.
func (h *Handler) handleNextTrain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := models.QueryParameters{
		TargetStation:   q.Get("station"),
		TargetDirection: q.Get("direction"),
		FeedID:          q.Get("feed"),
	}
	if err := h.validate.Struct(params); err != nil {
		h.writeError(w, "Missing station/direction parameter", http.StatusBadRequest)
		return
	}

	res := h.client.NextTrain(r.Context(), params)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !res.OK() {
		w.WriteHeader(http.StatusBadGateway)
	}
	_, _ = w.Write([]byte(res.Text))
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
