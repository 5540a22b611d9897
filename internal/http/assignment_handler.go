package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/domain"
	"labdoc-data/internal/repository"
	"labdoc-data/internal/service"
)

// employeeHeader identifies the operator behind a request. Listings are
// filtered by the operator's role; requests without the header see the full
// listing (trusted internal callers, batch jobs).
const employeeHeader = "X-Employee-ID"

func resolveViewer(r *http.Request, employees repository.EmployeesRepository, logger *zap.Logger) *domain.Employee {
	raw := r.Header.Get(employeeHeader)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	e, err := employees.Get(r.Context(), id)
	if err != nil {
		logger.Warn("unknown employee in request header",
			zap.Int64("employee_id", id), zap.Error(err))
		return nil
	}
	return e
}

// DosageAssignmentHandler serves /api/dosage-assignments.
type DosageAssignmentHandler struct {
	svc       *service.DosageAssignmentService
	employees repository.EmployeesRepository
	logger    *zap.Logger
}

func NewDosageAssignmentHandler(svc *service.DosageAssignmentService, employees repository.EmployeesRepository, logger *zap.Logger) *DosageAssignmentHandler {
	return &DosageAssignmentHandler{svc: svc, employees: employees, logger: logger}
}

func (h *DosageAssignmentHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		viewer := resolveViewer(r, h.employees, h.logger)
		items, err := h.svc.List(r.Context(), viewer)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(items))
	case http.MethodPost:
		var a domain.DosageAssignment
		if err := readBodyJSON(r, maxBodyBytes, &a); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		id, err := h.svc.Create(r.Context(), &a)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(map[string]any{"id": id}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DosageAssignmentHandler) Resource(w http.ResponseWriter, r *http.Request) {
	id, action, ok := splitResourcePath(strings.TrimPrefix(r.URL.Path, "/api/dosage-assignments"))
	if !ok || action != "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		a, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(a))
	case http.MethodPut:
		var a domain.DosageAssignment
		if err := readBodyJSON(r, maxBodyBytes, &a); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		a.ID = id
		if err := h.svc.Update(r.Context(), &a); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(any(nil)))
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(any(nil)))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ToxicologyAssignmentHandler serves /api/toxicology-assignments.
type ToxicologyAssignmentHandler struct {
	svc       *service.ToxicologyAssignmentService
	employees repository.EmployeesRepository
	logger    *zap.Logger
}

func NewToxicologyAssignmentHandler(svc *service.ToxicologyAssignmentService, employees repository.EmployeesRepository, logger *zap.Logger) *ToxicologyAssignmentHandler {
	return &ToxicologyAssignmentHandler{svc: svc, employees: employees, logger: logger}
}

func (h *ToxicologyAssignmentHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		viewer := resolveViewer(r, h.employees, h.logger)
		items, err := h.svc.List(r.Context(), viewer)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(items))
	case http.MethodPost:
		var a domain.ToxicologyAssignment
		if err := readBodyJSON(r, maxBodyBytes, &a); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		id, err := h.svc.Create(r.Context(), &a)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(map[string]any{"id": id}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ToxicologyAssignmentHandler) Resource(w http.ResponseWriter, r *http.Request) {
	id, action, ok := splitResourcePath(strings.TrimPrefix(r.URL.Path, "/api/toxicology-assignments"))
	if !ok || action != "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		a, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(a))
	case http.MethodPut:
		var a domain.ToxicologyAssignment
		if err := readBodyJSON(r, maxBodyBytes, &a); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		a.ID = id
		if err := h.svc.Update(r.Context(), &a); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(any(nil)))
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(any(nil)))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
