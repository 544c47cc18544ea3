package fakeapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jask/airwatch/internal/httpserver"
)

// Router returns the HTTP handler for the service endpoints.
func Router(store *Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpserver.Logging(logger))

	routes := &Routes{store: store}
	r.Get("/sectors", routes.listSectors)
	r.Get("/sector/{id}/status", routes.getStatus)
	r.Get("/sector/{id}/policy", routes.getPolicy)
	r.Post("/simulate", routes.simulate)
	return r
}

// Routes holds dependencies for the handlers.
type Routes struct {
	store *Store
}

// listSectors handles GET /sectors. Each call advances the synthetic
// readings by one step.
func (routes *Routes) listSectors(w http.ResponseWriter, _ *http.Request) {
	routes.store.Step()
	writeJSON(w, routes.store.Sectors(), http.StatusOK)
}

func (routes *Routes) getStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := sectorParam(w, r)
	if !ok {
		return
	}
	status, err := routes.store.Status(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, status, http.StatusOK)
}

func (routes *Routes) getPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := sectorParam(w, r)
	if !ok {
		return
	}
	policy, err := routes.store.Policy(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, policy, http.StatusOK)
}

// simulate handles POST /simulate?sector_id=&policy_name=
func (routes *Routes) simulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := strconv.Atoi(q.Get("sector_id"))
	if err != nil || id <= 0 {
		writeError(w, "sector_id must be a positive integer", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(q.Get("policy_name"))
	if name == "" {
		writeError(w, "policy_name is required", http.StatusBadRequest)
		return
	}
	result, err := routes.store.Simulate(id, name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

func sectorParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, "sector id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownSector):
		writeError(w, "Sector not found", http.StatusNotFound)
	case errors.Is(err, ErrUnknownPolicy):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		writeError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, map[string]string{"error": message}, statusCode)
}
