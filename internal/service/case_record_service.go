package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"labdoc-data/internal/docsync"
	"labdoc-data/internal/docx"
	"labdoc-data/internal/domain"
	"labdoc-data/internal/editor"
	"labdoc-data/internal/repository"
	"labdoc-data/internal/templates"
)

// Editor document kinds. Part of the minted document keys, so changing them
// invalidates every cached editor copy.
const (
	KindCaseRecord     = "case"
	KindDosageMemo     = "dosage_memo"
	KindToxicologyMemo = "toxicology_memo"
)

// CaseRecordService owns case records and their Word documents: CRUD, the
// download/callback pair used by the embedded editor, and field pushes into
// the stored blob.
type CaseRecordService struct {
	repo          repository.CaseRecordsRepository
	syncer        *docsync.Syncer
	fetcher       *editor.Client
	configs       *editor.ConfigBuilder
	extractOnSave bool
	logger        *zap.Logger
}

func NewCaseRecordService(
	repo repository.CaseRecordsRepository,
	syncer *docsync.Syncer,
	fetcher *editor.Client,
	configs *editor.ConfigBuilder,
	extractOnSave bool,
	logger *zap.Logger,
) *CaseRecordService {
	return &CaseRecordService{
		repo:          repo,
		syncer:        syncer,
		fetcher:       fetcher,
		configs:       configs,
		extractOnSave: extractOnSave,
		logger:        logger,
	}
}

func (s *CaseRecordService) Get(ctx context.Context, id int64) (*domain.CaseRecord, error) {
	return s.repo.Get(ctx, id)
}

func (s *CaseRecordService) List(ctx context.Context) ([]*domain.CaseRecord, error) {
	return s.repo.List(ctx)
}

// Create stores a new record. The document blob stays empty until the record
// is first opened in the editor and saved; FileContent renders from the
// template in the meantime.
func (s *CaseRecordService) Create(ctx context.Context, rec *domain.CaseRecord) (int64, error) {
	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return 0, err
	}
	s.logger.Info("case record created", zap.Int64("id", id))
	return id, nil
}

// Update persists changed fields and pushes them into the stored document, so
// a record edited through the listing stays consistent with its report.
func (s *CaseRecordService) Update(ctx context.Context, rec *domain.CaseRecord) error {
	current, err := s.repo.Get(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.Blob = current.Blob

	if len(rec.Blob) > 0 {
		blob, placed, err := s.syncer.PushCaseFields(rec.Blob, rec)
		if err != nil {
			return fmt.Errorf("push fields into case document: %w", err)
		}
		if placed > 0 {
			rec.Blob = blob
			s.configs.BumpDocumentKey(ctx, KindCaseRecord, rec.ID)
		}
	}
	return s.repo.Update(ctx, rec)
}

func (s *CaseRecordService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// FileContent returns the bytes to serve for a download. Records without a
// saved blob get the report template with the current field values placed
// into its content controls; nothing is persisted on this path.
func (s *CaseRecordService) FileContent(ctx context.Context, id int64) ([]byte, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rec.Blob) > 0 {
		return rec.Blob, nil
	}
	blob, placed, err := s.syncer.PushCaseFields(templates.CaseReport(), rec)
	if err != nil {
		return nil, fmt.Errorf("render case template: %w", err)
	}
	s.logger.Info("serving case report from template",
		zap.Int64("id", id), zap.Int("fields", placed))
	return blob, nil
}

// UploadBlob replaces the stored document with an externally produced one
// (scan, signed copy). The upload must at least open as a document package.
func (s *CaseRecordService) UploadBlob(ctx context.Context, id int64, blob []byte) error {
	if _, err := docx.Open(blob); err != nil {
		return fmt.Errorf("rejecting upload: %w", err)
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindCaseRecord, id)
	s.logger.Info("case document uploaded",
		zap.Int64("id", id), zap.Int("bytes", len(blob)))
	return nil
}

// EditorConfig builds the configuration payload for embedding this record's
// document in the editor.
func (s *CaseRecordService) EditorConfig(ctx context.Context, id int64, mode string) (map[string]any, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Informe Pericial %d", rec.ID)
	if rec.ReportNumber != "" {
		title = "Informe Pericial " + rec.ReportNumber
	}
	path := fmt.Sprintf("/api/case-records/%d", rec.ID)
	return s.configs.Build(ctx, KindCaseRecord, rec.ID, title, mode, path), nil
}

// HandleCallback processes one editor save callback. Only status 2 (document
// ready) triggers a pull; every other status is acknowledged untouched. The
// downloaded bytes are stored exactly as received.
func (s *CaseRecordService) HandleCallback(ctx context.Context, id int64, req editor.CallbackRequest) error {
	if req.Status != editor.StatusReadyToSave {
		s.logger.Debug("editor callback ignored",
			zap.Int64("id", id), zap.Int("status", req.Status))
		return nil
	}
	blob, err := s.fetcher.FetchDocument(ctx, req.URL)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindCaseRecord, id)

	if s.extractOnSave {
		if err := s.extractFields(ctx, id, blob); err != nil {
			// The document is already saved; a failed extraction only delays
			// the relational copy of the fields.
			s.logger.Warn("field extraction after save failed",
				zap.Int64("id", id), zap.Error(err))
		}
	}
	s.logger.Info("case document saved from editor",
		zap.Int64("id", id), zap.Int("bytes", len(blob)))
	return nil
}

func (s *CaseRecordService) extractFields(ctx context.Context, id int64, blob []byte) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	applied, err := s.syncer.ExtractCaseFields(blob, rec)
	if err != nil {
		return err
	}
	if applied == 0 {
		return nil
	}
	return s.repo.Update(ctx, rec)
}

// PushResults rewrites the results table of the stored document from a
// toxicology screen. No-op for records that have no document yet.
func (s *CaseRecordService) PushResults(ctx context.Context, id int64, results domain.ToxicologyResults) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if len(rec.Blob) == 0 {
		return nil
	}
	blob, changed, err := s.syncer.PushToxicologyResults(rec.Blob, results)
	if err != nil {
		return fmt.Errorf("push toxicology results: %w", err)
	}
	if !changed {
		return nil
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindCaseRecord, id)
	return nil
}

// PushField writes one tagged value into the stored document, using the old
// value as a text fallback when the control was stripped by an editor. No-op
// for records that have no document yet.
func (s *CaseRecordService) PushField(ctx context.Context, id int64, tag, oldValue, value string) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if len(rec.Blob) == 0 {
		return nil
	}
	blob, changed, err := s.syncer.PushField(rec.Blob, tag, oldValue, value)
	if err != nil {
		return fmt.Errorf("push %s: %w", tag, err)
	}
	if !changed {
		return nil
	}
	if err := s.repo.UpdateBlob(ctx, id, blob); err != nil {
		return err
	}
	s.configs.BumpDocumentKey(ctx, KindCaseRecord, id)
	return nil
}
