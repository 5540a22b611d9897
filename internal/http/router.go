package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library mux; route shapes stay simple enough
// that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterCaseRecordRoutes wires /api/case-records, including the editor
// endpoints of each record and the listing export.
func (r *Router) RegisterCaseRecordRoutes(h *CaseRecordHandler) {
	r.Handle("/api/case-records", h.Collection)
	r.Handle("/api/case-records/export", h.Export)
	r.Handle("/api/case-records/", h.Resource)
}

// RegisterAssignmentRoutes wires both assignment listings.
func (r *Router) RegisterAssignmentRoutes(d *DosageAssignmentHandler, t *ToxicologyAssignmentHandler) {
	r.Handle("/api/dosage-assignments", d.Collection)
	r.Handle("/api/dosage-assignments/", d.Resource)
	r.Handle("/api/toxicology-assignments", t.Collection)
	r.Handle("/api/toxicology-assignments/", t.Resource)
}

// RegisterMemorandumRoutes wires both memoranda collections.
func (r *Router) RegisterMemorandumRoutes(d *DosageMemorandumHandler, t *ToxicologyMemorandumHandler) {
	r.Handle("/api/dosage-memoranda", d.Collection)
	r.Handle("/api/dosage-memoranda/", d.Resource)
	r.Handle("/api/toxicology-memoranda", t.Collection)
	r.Handle("/api/toxicology-memoranda/", t.Resource)
}

// RegisterEmployeeRoutes wires the read-only employee listing.
func (r *Router) RegisterEmployeeRoutes(h *EmployeeHandler) {
	r.Handle("/api/employees", h.Collection)
	r.Handle("/api/employees/", h.Resource)
}

// RegisterHealthRoute answers load balancer probes.
func (r *Router) RegisterHealthRoute() {
	r.Handle("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
