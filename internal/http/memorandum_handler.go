package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/domain"
	"labdoc-data/internal/editor"
	"labdoc-data/internal/service"
)

// DosageMemorandumHandler serves /api/dosage-memoranda.
type DosageMemorandumHandler struct {
	svc    *service.DosageMemorandumService
	logger *zap.Logger
}

func NewDosageMemorandumHandler(svc *service.DosageMemorandumService, logger *zap.Logger) *DosageMemorandumHandler {
	return &DosageMemorandumHandler{svc: svc, logger: logger}
}

func (h *DosageMemorandumHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(items))
	case http.MethodPost:
		var m domain.DosageMemorandum
		if err := readBodyJSON(r, maxBodyBytes, &m); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		id, err := h.svc.Create(r.Context(), &m)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(map[string]any{"id": id}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DosageMemorandumHandler) Resource(w http.ResponseWriter, r *http.Request) {
	id, action, ok := splitResourcePath(strings.TrimPrefix(r.URL.Path, "/api/dosage-memoranda"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch action {
	case "":
		h.resource(w, r, id)
	case "download":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		blob, err := h.svc.FileContent(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		serveDocx(w, fmt.Sprintf("oficio_dosaje_%d.docx", id), blob)
	case "editor-config":
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
	case "callback":
		handleCallback(w, r, id, h.svc.HandleCallback, h.logger)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *DosageMemorandumHandler) resource(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		m, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(m))
	case http.MethodPut:
		var m domain.DosageMemorandum
		if err := readBodyJSON(r, maxBodyBytes, &m); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		m.ID = id
		if err := h.svc.Update(r.Context(), &m); err != nil {
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

// ToxicologyMemorandumHandler serves /api/toxicology-memoranda.
type ToxicologyMemorandumHandler struct {
	svc    *service.ToxicologyMemorandumService
	logger *zap.Logger
}

func NewToxicologyMemorandumHandler(svc *service.ToxicologyMemorandumService, logger *zap.Logger) *ToxicologyMemorandumHandler {
	return &ToxicologyMemorandumHandler{svc: svc, logger: logger}
}

func (h *ToxicologyMemorandumHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(items))
	case http.MethodPost:
		var m domain.ToxicologyMemorandum
		if err := readBodyJSON(r, maxBodyBytes, &m); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		id, err := h.svc.Create(r.Context(), &m)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(map[string]any{"id": id}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ToxicologyMemorandumHandler) Resource(w http.ResponseWriter, r *http.Request) {
	id, action, ok := splitResourcePath(strings.TrimPrefix(r.URL.Path, "/api/toxicology-memoranda"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch action {
	case "":
		h.resource(w, r, id)
	case "download":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		blob, err := h.svc.FileContent(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		serveDocx(w, fmt.Sprintf("oficio_toxicologia_%d.docx", id), blob)
	case "sync":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := h.svc.SyncToDocument(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(any(nil)))
	case "editor-config":
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
	case "callback":
		handleCallback(w, r, id, h.svc.HandleCallback, h.logger)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ToxicologyMemorandumHandler) resource(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		m, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(m))
	case http.MethodPut:
		var m domain.ToxicologyMemorandum
		if err := readBodyJSON(r, maxBodyBytes, &m); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		m.ID = id
		if err := h.svc.Update(r.Context(), &m); err != nil {
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

// handleCallback answers the editor's save protocol: {"error":0} on success,
// {"error":1,"message":...} with a server-error status when the pull failed.
func handleCallback(
	w http.ResponseWriter,
	r *http.Request,
	id int64,
	fn func(ctx context.Context, id int64, req editor.CallbackRequest) error,
	logger *zap.Logger,
) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req editor.CallbackRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, editor.CallbackResponse{Error: 1, Message: "invalid body"})
		return
	}
	if err := fn(r.Context(), id, req); err != nil {
		logger.Error("editor callback failed",
			zap.Int64("id", id), zap.Int("status", req.Status), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, editor.CallbackResponse{Error: 1, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, editor.CallbackResponse{Error: 0})
}
