package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/domain"
	"labdoc-data/internal/service"
)

const maxUploadBytes = 25 << 20

// CaseRecordHandler serves /api/case-records. Besides CRUD it owns the three
// editor endpoints of a record: download, editor-config and callback.
type CaseRecordHandler struct {
	svc    *service.CaseRecordService
	logger *zap.Logger
}

func NewCaseRecordHandler(svc *service.CaseRecordService, logger *zap.Logger) *CaseRecordHandler {
	return &CaseRecordHandler{svc: svc, logger: logger}
}

// Collection handles GET (list) and POST (create) on the collection path.
func (h *CaseRecordHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(items))
	case http.MethodPost:
		var rec domain.CaseRecord
		if err := readBodyJSON(r, maxBodyBytes, &rec); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		id, err := h.svc.Create(r.Context(), &rec)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(map[string]any{"id": id}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Export serves the case listing as an Excel download.
func (h *CaseRecordHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	blob, err := GenerateCaseRecordExport(items)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="registros.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

// Resource handles /api/case-records/{id} and its sub-resources.
func (h *CaseRecordHandler) Resource(w http.ResponseWriter, r *http.Request) {
	id, action, ok := splitResourcePath(strings.TrimPrefix(r.URL.Path, "/api/case-records"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch action {
	case "":
		h.resource(w, r, id)
	case "download":
		h.download(w, r, id)
	case "upload":
		h.upload(w, r, id)
	case "editor-config":
		h.editorConfig(w, r, id)
	case "callback":
		h.callback(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *CaseRecordHandler) resource(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		rec, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(rec))
	case http.MethodPut:
		var rec domain.CaseRecord
		if err := readBodyJSON(r, maxBodyBytes, &rec); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		rec.ID = id
		if err := h.svc.Update(r.Context(), &rec); err != nil {
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

func (h *CaseRecordHandler) download(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	blob, err := h.svc.FileContent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	serveDocx(w, fmt.Sprintf("informe_pericial_%d.docx", id), blob)
}

func (h *CaseRecordHandler) upload(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil || len(blob) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("empty upload"))
		return
	}
	if err := h.svc.UploadBlob(r.Context(), id, blob); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(any(nil)))
}

func (h *CaseRecordHandler) editorConfig(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "edit"
	}
	cfg, err := h.svc.EditorConfig(r.Context(), id, mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(cfg))
}

func (h *CaseRecordHandler) callback(w http.ResponseWriter, r *http.Request, id int64) {
	handleCallback(w, r, id, h.svc.HandleCallback, h.logger)
}
