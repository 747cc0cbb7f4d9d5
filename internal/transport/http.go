package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saubh/planwise/internal/domain/project"
	"github.com/saubh/planwise/internal/interchange"
)

// Server wires HTTP handlers over the project service.
type Server struct {
	svc       *project.Service
	validator *project.Validator
	importer  *interchange.Importer
	logger    *slog.Logger
}

// GenericError is the JSON error envelope.
type GenericError struct {
	Message string `json:"message"`
}

// NewServer creates the HTTP router.
func NewServer(svc *project.Service, validator *project.Validator, importer *interchange.Importer, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{svc: svc, validator: validator, importer: importer, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Post("/", srv.handleCreate)
		r.Get("/stats", srv.handleStats)
		r.Get("/export", srv.handleExport)
		r.Post("/import", srv.handleImport)
		r.Get("/{id}", srv.handleGet)
		r.Put("/{id}", srv.handleUpdate)
		r.Delete("/{id}", srv.handleDelete)
	})

	return r
}

// projectResponse carries a project plus its derived payment progress.
type projectResponse struct {
	project.Project
	PaymentProgress float64 `json:"payment_progress"`
}

func toResponse(p project.Project) projectResponse {
	return projectResponse{Project: p, PaymentProgress: p.PaymentProgress()}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := project.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown filter")
		return
	}

	list := filter.Apply(s.svc.Projects())
	list = project.Search(list, r.URL.Query().Get("q"))

	out := make([]projectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := s.svc.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(p))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft project.Project
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.ValidateDraft(draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.svc.Add(r.Context(), draft)
	if err != nil {
		s.logger.Error("create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create project")
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(created))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var proj project.Project
	if err := json.NewDecoder(r.Body).Decode(&proj); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	proj.ID = id

	if err := s.validator.ValidateDraft(proj); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.svc.Update(r.Context(), proj)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.logger.Error("update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update project")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(updated))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.svc.Delete(r.Context(), project.Project{ID: id}); err != nil {
		s.logger.Error("delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statsResponse summarizes the portfolio for dashboard display.
type statsResponse struct {
	Totals project.Totals `json:"totals"`
	Counts map[string]int `json:"counts"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	list := s.svc.Projects()

	counts := make(map[string]int, len(project.Filters))
	for _, f := range project.Filters {
		counts[string(f)] = f.Count(list)
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Totals: s.svc.Totals(),
		Counts: counts,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="projects.csv"`)
	if err := interchange.Export(w, s.svc.Projects()); err != nil {
		s.logger.Error("export failed", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	result, err := s.importer.Import(r.Context(), r.Body)
	if err != nil {
		s.logger.Error("import failed", "error", err)
		writeError(w, http.StatusBadRequest, "import failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, GenericError{Message: msg})
}
