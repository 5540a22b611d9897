package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labdoc-data/internal/docsync"
	"labdoc-data/internal/domain"
	"labdoc-data/internal/editor"
	"labdoc-data/internal/repository"
	"labdoc-data/internal/service"
	"labdoc-data/internal/store"
	"labdoc-data/internal/templates"
)

// newTestRouter assembles the full API surface over memory repositories, the
// same way main wires it when the database is unreachable.
func newTestRouter() (*Router, *repository.MemoryCaseRecordsRepo) {
	logger := zap.NewNop()
	cases := repository.NewMemoryCaseRecordsRepo()
	employees := repository.NewMemoryEmployeesRepo(
		domain.Employee{ID: 1, FirstName: "Ana", LastName: "Salas", Role: "Administrador"},
		domain.Employee{ID: 7, FirstName: "Luis", LastName: "Rojas", Role: "Quimico Farmaceutico"},
	)

	syncer := docsync.NewSyncer(logger)
	fetcher := editor.NewClient("", logger)
	configs := editor.NewConfigBuilder(store.NewMemoryKV(), "http://lab.test", logger)

	caseSvc := service.NewCaseRecordService(cases, syncer, fetcher, configs, false, logger)
	dosageSvc := service.NewDosageAssignmentService(
		repository.NewMemoryDosageAssignmentsRepo(), cases, caseSvc, logger)
	toxSvc := service.NewToxicologyAssignmentService(
		repository.NewMemoryToxicologyAssignmentsRepo(), cases, caseSvc, logger)
	dosageMemoSvc := service.NewDosageMemorandumService(
		repository.NewMemoryDosageMemorandaRepo(), cases, syncer, fetcher, configs, logger)
	toxMemoSvc := service.NewToxicologyMemorandumService(
		repository.NewMemoryToxicologyMemorandaRepo(), cases, syncer, fetcher, configs, logger)

	r := NewRouter(logger)
	r.RegisterCaseRecordRoutes(NewCaseRecordHandler(caseSvc, logger))
	r.RegisterAssignmentRoutes(
		NewDosageAssignmentHandler(dosageSvc, employees, logger),
		NewToxicologyAssignmentHandler(toxSvc, employees, logger))
	r.RegisterMemorandumRoutes(
		NewDosageMemorandumHandler(dosageMemoSvc, logger),
		NewToxicologyMemorandumHandler(toxMemoSvc, logger))
	r.RegisterEmployeeRoutes(NewEmployeeHandler(employees, logger))
	r.RegisterHealthRoute()
	return r, cases
}

func doJSON(t *testing.T, r *Router, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder, out any) Result[json.RawMessage] {
	t.Helper()
	var env Result[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Result, out))
	}
	return env
}

func TestHealthRoute(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCaseRecordCRUD(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/case-records",
		domain.CaseRecord{SubjectName: "JUAN PEREZ", DNI: "12345678"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	env := decodeResult(t, w, &created)
	assert.Equal(t, ResultSuccess, env.Code)
	require.Equal(t, int64(1), created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/case-records/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rec domain.CaseRecord
	decodeResult(t, w, &rec)
	assert.Equal(t, "JUAN PEREZ", rec.SubjectName)

	rec.SubjectName = "JUAN PEREZ QUISPE"
	w = doJSON(t, r, http.MethodPut, "/api/case-records/1", rec, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/case-records", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.CaseRecord
	decodeResult(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "JUAN PEREZ QUISPE", list[0].SubjectName)

	w = doJSON(t, r, http.MethodDelete, "/api/case-records/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/case-records/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env = decodeResult(t, w, nil)
	assert.Equal(t, ResultError, env.Code)
}

func TestCaseRecordResourceRejectsBadIDs(t *testing.T) {
	r, _ := newTestRouter()
	for _, path := range []string{
		"/api/case-records/abc",
		"/api/case-records/0",
		"/api/case-records/-3",
		"/api/case-records/1/unknown",
	} {
		w := doJSON(t, r, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestCaseRecordDownloadServesDocument(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{SubjectName: "X"}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/case-records/1/download", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `informe_pericial_1.docx`)
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestCaseRecordUploadRoundTrip(t *testing.T) {
	r, cases := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/case-records/1/upload",
		bytes.NewReader(templates.CaseReport()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := cases.Get(req.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, templates.CaseReport(), rec.Blob)
}

func TestCaseRecordEditorConfig(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/case-records/1/editor-config", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cfg map[string]any
	decodeResult(t, w, &cfg)
	assert.Equal(t, "word", cfg["documentType"])
	doc := cfg["document"].(map[string]any)
	assert.Equal(t, "http://lab.test/api/case-records/1/download", doc["url"])
}

func TestCallbackAcknowledgesWithExactErrorZero(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{}, nil)

	// Status 4 (closed without changes) must be acknowledged without action.
	w := doJSON(t, r, http.MethodPost, "/api/case-records/1/callback",
		editor.CallbackRequest{Status: 4}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"error":0}`, strings.TrimSpace(w.Body.String()))
}

func TestCallbackReportsFailureInBody(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{}, nil)

	// Status 2 with an unreachable URL fails the pull.
	w := doJSON(t, r, http.MethodPost, "/api/case-records/1/callback",
		editor.CallbackRequest{Status: 2, URL: "http://127.0.0.1:1/nope"}, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp editor.CallbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Error)
	assert.NotEmpty(t, resp.Message)
}

func TestCallbackRejectsMalformedBody(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/case-records/1/callback",
		strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp editor.CallbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Error)
}

func TestCaseRecordExport(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records",
		domain.CaseRecord{SubjectName: "JUAN PEREZ", ReportNumber: "087-2026"}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/case-records/export", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "registros.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestDosageAssignmentListingFiltersByEmployeeHeader(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records", domain.CaseRecord{}, nil)

	for _, a := range []domain.DosageAssignment{
		{CaseRecordID: 1, AssigneeID: 7, IssuerID: 1},
		{CaseRecordID: 1, AssigneeID: 2, IssuerID: 1},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/dosage-assignments", a, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// No header: full listing.
	w := doJSON(t, r, http.MethodGet, "/api/dosage-assignments", nil, nil)
	var list []domain.DosageAssignment
	decodeResult(t, w, &list)
	assert.Len(t, list, 2)

	// The chemist only sees their own assignment.
	w = doJSON(t, r, http.MethodGet, "/api/dosage-assignments", nil,
		http.Header{employeeHeader: []string{"7"}})
	list = nil
	decodeResult(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].AssigneeID)

	// The admin sees everything.
	w = doJSON(t, r, http.MethodGet, "/api/dosage-assignments", nil,
		http.Header{employeeHeader: []string{"1"}})
	list = nil
	decodeResult(t, w, &list)
	assert.Len(t, list, 2)
}

func TestDosageAssignmentCreateRejectsUnknownCase(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/dosage-assignments",
		domain.DosageAssignment{CaseRecordID: 42}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToxicologyMemorandumSyncEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/api/case-records",
		domain.CaseRecord{SubjectName: "ROSA FLORES", DNI: "87654321"}, nil)
	w := doJSON(t, r, http.MethodPost, "/api/toxicology-memoranda",
		domain.ToxicologyMemorandum{Date: "2026-02-10", MemoNumber: "077-2026", CaseRecordID: 1}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/toxicology-memoranda/1/sync", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/toxicology-memoranda/1/download", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestEmployeeListing(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/api/employees", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Employee
	decodeResult(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].FirstName)
}

func TestCollectionRejectsUnknownMethods(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, http.MethodPatch, "/api/case-records", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
