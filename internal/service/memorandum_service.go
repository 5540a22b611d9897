package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"labdoc-data/internal/docsync"
	"labdoc-data/internal/domain"
	"labdoc-data/internal/editor"
	"labdoc-data/internal/repository"
	"labdoc-data/internal/templates"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "setiembre", "octubre", "noviembre", "diciembre",
}

// LongDate renders an ISO date the way memoranda spell it out, e.g.
// "2026-01-02" becomes "2 de enero del 2026". Unparseable input comes back
// unchanged so a hand-typed date still lands in the document.
func LongDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d de %s del %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// DosageMemorandumService manages the cover memoranda of dosage cases. A
// dosage memo has no report of its own: its download serves the linked case
// document when one exists.
type DosageMemorandumService struct {
	repo    repository.DosageMemorandaRepository
	cases   repository.CaseRecordsRepository
	syncer  *docsync.Syncer
	fetcher *editor.Client
	configs *editor.ConfigBuilder
	logger  *zap.Logger
}

func NewDosageMemorandumService(
	repo repository.DosageMemorandaRepository,
	cases repository.CaseRecordsRepository,
	syncer *docsync.Syncer,
	fetcher *editor.Client,
	configs *editor.ConfigBuilder,
	logger *zap.Logger,
) *DosageMemorandumService {
	return &DosageMemorandumService{
		repo:    repo,
		cases:   cases,
		syncer:  syncer,
		fetcher: fetcher,
		configs: configs,
		logger:  logger,
	}
}

func (s *DosageMemorandumService) Get(ctx context.Context, id int64) (*domain.DosageMemorandum, error) {
	return s.repo.Get(ctx, id)
}

func (s *DosageMemorandumService) List(ctx context.Context) ([]*domain.DosageMemorandum, error) {
	return s.repo.List(ctx)
}

func (s *DosageMemorandumService) Create(ctx context.Context, m *domain.DosageMemorandum) (int64, error) {
	return s.repo.Create(ctx, m)
}

func (s *DosageMemorandumService) Update(ctx context.Context, m *domain.DosageMemorandum) error {
	current, err := s.repo.Get(ctx, m.ID)
	if err != nil {
		return err
	}
	m.Blob = current.Blob
	return s.repo.Update(ctx, m)
}

func (s *DosageMemorandumService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// FileContent serves, in order of preference: the linked case document, the
// memo's own saved blob, or the memo template with its markers filled in.
func (s *DosageMemorandumService) FileContent(ctx context.Context, id int64) ([]byte, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec, err := s.cases.Get(ctx, m.CaseRecordID); err == nil && len(rec.Blob) > 0 {
		return rec.Blob, nil
	}
	if len(m.Blob) > 0 {
		return m.Blob, nil
	}
	blob, _, err := s.syncer.PushMarkers(templates.DosageMemorandum(), dosageMemoMarkers(m))
	if err != nil {
		return nil, fmt.Errorf("render dosage memo template: %w", err)
	}
	return blob, nil
}

func (s *DosageMemorandumService) EditorConfig(ctx context.Context, id int64, mode string) (map[string]any, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := "Oficio " + m.MemoNumber
	if m.MemoNumber == "" {
		title = fmt.Sprintf("Oficio %d", m.ID)
	}
	path := fmt.Sprintf("/api/dosage-memoranda/%d", m.ID)
	return s.configs.Build(ctx, KindDosageMemo, m.ID, title, mode, path), nil
}

func (s *DosageMemorandumService) HandleCallback(ctx context.Context, id int64, req editor.CallbackRequest) error {
	if req.Status != editor.StatusReadyToSave {
		return nil
	}
	blob, err := s.fetcher.FetchDocument(ctx, req.URL)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindDosageMemo, id)
	s.logger.Info("dosage memo saved from editor",
		zap.Int64("id", id), zap.Int("bytes", len(blob)))
	return nil
}

func dosageMemoMarkers(m *domain.DosageMemorandum) map[string]string {
	return map[string]string{
		docsync.MarkerDate:         LongDate(m.Date),
		docsync.MarkerMemoNumber:   m.MemoNumber,
		docsync.MarkerRank:         m.Rank,
		docsync.MarkerOfficer:      m.OfficerName,
		docsync.MarkerReference:    m.Reference,
		docsync.MarkerReportNumber: m.ReportNumber,
	}
}

// ToxicologyMemorandumService manages toxicology cover memoranda, which own
// their document blob outright.
type ToxicologyMemorandumService struct {
	repo    repository.ToxicologyMemorandaRepository
	cases   repository.CaseRecordsRepository
	syncer  *docsync.Syncer
	fetcher *editor.Client
	configs *editor.ConfigBuilder
	logger  *zap.Logger
}

func NewToxicologyMemorandumService(
	repo repository.ToxicologyMemorandaRepository,
	cases repository.CaseRecordsRepository,
	syncer *docsync.Syncer,
	fetcher *editor.Client,
	configs *editor.ConfigBuilder,
	logger *zap.Logger,
) *ToxicologyMemorandumService {
	return &ToxicologyMemorandumService{
		repo:    repo,
		cases:   cases,
		syncer:  syncer,
		fetcher: fetcher,
		configs: configs,
		logger:  logger,
	}
}

func (s *ToxicologyMemorandumService) Get(ctx context.Context, id int64) (*domain.ToxicologyMemorandum, error) {
	return s.repo.Get(ctx, id)
}

func (s *ToxicologyMemorandumService) List(ctx context.Context) ([]*domain.ToxicologyMemorandum, error) {
	return s.repo.List(ctx)
}

func (s *ToxicologyMemorandumService) Create(ctx context.Context, m *domain.ToxicologyMemorandum) (int64, error) {
	return s.repo.Create(ctx, m)
}

func (s *ToxicologyMemorandumService) Update(ctx context.Context, m *domain.ToxicologyMemorandum) error {
	current, err := s.repo.Get(ctx, m.ID)
	if err != nil {
		return err
	}
	m.Blob = current.Blob
	return s.repo.Update(ctx, m)
}

func (s *ToxicologyMemorandumService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// FileContent serves the memo's blob, rendering from the template when the
// memo was never synchronized. Nothing is persisted on this path.
func (s *ToxicologyMemorandumService) FileContent(ctx context.Context, id int64) ([]byte, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(m.Blob) > 0 {
		return m.Blob, nil
	}
	blob, _, err := s.syncer.PushMarkers(templates.ToxicologyMemorandum(), s.markers(ctx, m))
	if err != nil {
		return nil, fmt.Errorf("render toxicology memo template: %w", err)
	}
	return blob, nil
}

// SyncToDocument fills the memo's markers from its own fields plus the
// subject data of the linked case, and persists the result as the memo blob.
func (s *ToxicologyMemorandumService) SyncToDocument(ctx context.Context, id int64) error {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	source := m.Blob
	if len(source) == 0 {
		source = templates.ToxicologyMemorandum()
	}
	blob, placed, err := s.syncer.PushMarkers(source, s.markers(ctx, m))
	if err != nil {
		return fmt.Errorf("sync toxicology memo: %w", err)
	}
	if placed == 0 {
		s.logger.Warn("no markers placed in toxicology memo", zap.Int64("id", id))
		return nil
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindToxicologyMemo, id)
	s.logger.Info("toxicology memo synchronized",
		zap.Int64("id", id), zap.Int("markers", placed))
	return nil
}

func (s *ToxicologyMemorandumService) EditorConfig(ctx context.Context, id int64, mode string) (map[string]any, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := "Oficio " + m.MemoNumber
	if m.MemoNumber == "" {
		title = fmt.Sprintf("Oficio %d", m.ID)
	}
	path := fmt.Sprintf("/api/toxicology-memoranda/%d", m.ID)
	return s.configs.Build(ctx, KindToxicologyMemo, m.ID, title, mode, path), nil
}

func (s *ToxicologyMemorandumService) HandleCallback(ctx context.Context, id int64, req editor.CallbackRequest) error {
	if req.Status != editor.StatusReadyToSave {
		return nil
	}
	blob, err := s.fetcher.FetchDocument(ctx, req.URL)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindToxicologyMemo, id)
	s.logger.Info("toxicology memo saved from editor",
		zap.Int64("id", id), zap.Int("bytes", len(blob)))
	return nil
}

func (s *ToxicologyMemorandumService) markers(ctx context.Context, m *domain.ToxicologyMemorandum) map[string]string {
	fields := map[string]string{
		docsync.MarkerDate:            LongDate(m.Date),
		docsync.MarkerMemoNumber:      m.MemoNumber,
		docsync.MarkerRank:            m.Rank,
		docsync.MarkerOfficer:         m.OfficerName,
		docsync.MarkerReferenceReport: m.ReferenceReport,
	}
	rec, err := s.cases.Get(ctx, m.CaseRecordID)
	if err != nil {
		s.logger.Warn("toxicology memo has no linked case",
			zap.Int64("id", m.ID), zap.Int64("case_id", m.CaseRecordID), zap.Error(err))
		return fields
	}
	fields[docsync.MarkerSubjectName] = rec.SubjectName
	fields[docsync.MarkerSubjectDNI] = rec.DNI
	fields[docsync.MarkerSubjectAge] = rec.Age
	fields[docsync.MarkerSampleType] = rec.SampleType
	fields[docsync.MarkerReportNumber] = rec.ReportNumber
	return fields
}
