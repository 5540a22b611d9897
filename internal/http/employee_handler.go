package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/repository"
)

// EmployeeHandler serves the read-only /api/employees listing used by the
// assignment forms.
type EmployeeHandler struct {
	repo   repository.EmployeesRepository
	logger *zap.Logger
}

func NewEmployeeHandler(repo repository.EmployeesRepository, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{repo: repo, logger: logger}
}

func (h *EmployeeHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

func (h *EmployeeHandler) Resource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, action, ok := splitResourcePath(strings.TrimPrefix(r.URL.Path, "/api/employees"))
	if !ok || action != "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	e, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(e))
}
