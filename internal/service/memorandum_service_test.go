package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labdoc-data/internal/docsync"
	"labdoc-data/internal/docx"
	"labdoc-data/internal/domain"
	"labdoc-data/internal/editor"
	"labdoc-data/internal/repository"
	"labdoc-data/internal/store"
	"labdoc-data/internal/templates"
)

func TestLongDate(t *testing.T) {
	assert.Equal(t, "2 de enero del 2026", LongDate("2026-01-02"))
	assert.Equal(t, "15 de setiembre del 2026", LongDate("2026-09-15"))
	assert.Equal(t, "31 de diciembre del 2025", LongDate("2025-12-31"))
}

func TestLongDatePassesUnparseableInputThrough(t *testing.T) {
	assert.Equal(t, "26 de enero del 2026", LongDate("26 de enero del 2026"))
	assert.Equal(t, "", LongDate(""))
}

type memoFixture struct {
	cases  *repository.MemoryCaseRecordsRepo
	dosage *DosageMemorandumService
	tox    *ToxicologyMemorandumService
	toxes  *repository.MemoryToxicologyMemorandaRepo
}

func newMemoFixture() *memoFixture {
	logger := zap.NewNop()
	cases := repository.NewMemoryCaseRecordsRepo()
	syncer := docsync.NewSyncer(logger)
	fetcher := editor.NewClient("", logger)
	configs := editor.NewConfigBuilder(store.NewMemoryKV(), "http://lab.test", logger)
	toxes := repository.NewMemoryToxicologyMemorandaRepo()
	return &memoFixture{
		cases: cases,
		dosage: NewDosageMemorandumService(
			repository.NewMemoryDosageMemorandaRepo(), cases, syncer, fetcher, configs, logger),
		tox: NewToxicologyMemorandumService(
			toxes, cases, syncer, fetcher, configs, logger),
		toxes: toxes,
	}
}

func documentText(t *testing.T, blob []byte) string {
	t.Helper()
	pkg, err := docx.Open(blob)
	require.NoError(t, err)
	var b strings.Builder
	for _, p := range pkg.AllParagraphs() {
		b.WriteString(p.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func TestDosageMemoDownloadPrefersLinkedCaseDocument(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	caseID, err := f.cases.Create(ctx, &domain.CaseRecord{SubjectName: "JUAN PEREZ"})
	require.NoError(t, err)
	caseBlob := templates.CaseReport()
	require.NoError(t, f.cases.UpdateBlob(ctx, caseID, caseBlob))

	id, err := f.dosage.Create(ctx, &domain.DosageMemorandum{CaseRecordID: caseID})
	require.NoError(t, err)

	blob, err := f.dosage.FileContent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, caseBlob, blob)
}

func TestDosageMemoDownloadRendersTemplateWithMarkers(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	id, err := f.dosage.Create(ctx, &domain.DosageMemorandum{
		Date:        "2026-01-26",
		MemoNumber:  "045-2026",
		Rank:        "SO2 PNP",
		OfficerName: "CARLOS HUAMAN",
	})
	require.NoError(t, err)

	blob, err := f.dosage.FileContent(ctx, id)
	require.NoError(t, err)

	text := documentText(t, blob)
	assert.Contains(t, text, "26 de enero del 2026")
	assert.Contains(t, text, "045-2026")
	assert.NotContains(t, text, "{{FECHA}}")
	assert.NotContains(t, text, "{{NRO_OFICIO}}")
}

func TestToxicologyMemoSyncPersistsMarkers(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	caseID, err := f.cases.Create(ctx, &domain.CaseRecord{
		SubjectName:  "ROSA FLORES",
		DNI:          "87654321",
		Age:          "34",
		SampleType:   "SANGRE",
		ReportNumber: "112-2026",
	})
	require.NoError(t, err)

	id, err := f.tox.Create(ctx, &domain.ToxicologyMemorandum{
		Date:         "2026-02-10",
		MemoNumber:   "077-2026",
		CaseRecordID: caseID,
	})
	require.NoError(t, err)

	require.NoError(t, f.tox.SyncToDocument(ctx, id))

	m, err := f.toxes.Get(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, m.Blob)

	text := documentText(t, m.Blob)
	assert.Contains(t, text, "10 de febrero del 2026")
	assert.Contains(t, text, "077-2026")
	assert.Contains(t, text, "ROSA FLORES")
	assert.Contains(t, text, "87654321")
	assert.NotContains(t, text, "{{NOMBRE}}")
}

func TestToxicologyMemoSyncWithoutLinkedCaseStillFillsOwnMarkers(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	id, err := f.tox.Create(ctx, &domain.ToxicologyMemorandum{
		Date:       "2026-03-05",
		MemoNumber: "090-2026",
	})
	require.NoError(t, err)

	require.NoError(t, f.tox.SyncToDocument(ctx, id))

	m, err := f.toxes.Get(ctx, id)
	require.NoError(t, err)
	text := documentText(t, m.Blob)
	assert.Contains(t, text, "5 de marzo del 2026")
	assert.Contains(t, text, "090-2026")
}

func TestToxicologyMemoFileContentDoesNotPersist(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	id, err := f.tox.Create(ctx, &domain.ToxicologyMemorandum{MemoNumber: "001-2026"})
	require.NoError(t, err)

	blob, err := f.tox.FileContent(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	m, err := f.toxes.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, m.Blob)
}

func TestToxicologyMemoCallbackStoresDocument(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	saved := templates.ToxicologyMemorandum()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(saved)
	}))
	defer srv.Close()

	id, err := f.tox.Create(ctx, &domain.ToxicologyMemorandum{})
	require.NoError(t, err)

	require.NoError(t, f.tox.HandleCallback(ctx, id, editor.CallbackRequest{
		Status: editor.StatusReadyToSave,
		URL:    srv.URL,
	}))

	m, err := f.toxes.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, saved, m.Blob)
}

func TestMemoEditorConfigPaths(t *testing.T) {
	f := newMemoFixture()
	ctx := context.Background()

	id, err := f.dosage.Create(ctx, &domain.DosageMemorandum{MemoNumber: "045-2026"})
	require.NoError(t, err)

	cfg, err := f.dosage.EditorConfig(ctx, id, "edit")
	require.NoError(t, err)
	doc := cfg["document"].(map[string]any)
	assert.Equal(t, "Oficio 045-2026", doc["title"])
	assert.Contains(t, doc["url"], "/api/dosage-memoranda/")
}
