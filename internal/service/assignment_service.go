package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"labdoc-data/internal/docsync"
	"labdoc-data/internal/domain"
	"labdoc-data/internal/repository"
)

// DosageAssignmentService manages alcohol-dosage work assignments. A measured
// value entered on an assignment is pushed straight into the linked case
// report so the document never lags behind the record.
type DosageAssignmentService struct {
	repo   repository.DosageAssignmentsRepository
	cases  repository.CaseRecordsRepository
	docs   *CaseRecordService
	logger *zap.Logger
}

func NewDosageAssignmentService(
	repo repository.DosageAssignmentsRepository,
	cases repository.CaseRecordsRepository,
	docs *CaseRecordService,
	logger *zap.Logger,
) *DosageAssignmentService {
	return &DosageAssignmentService{repo: repo, cases: cases, docs: docs, logger: logger}
}

func (s *DosageAssignmentService) Get(ctx context.Context, id int64) (*domain.DosageAssignment, error) {
	return s.repo.Get(ctx, id)
}

// List returns the assignments the viewer may see (see VisibleAssignments).
func (s *DosageAssignmentService) List(ctx context.Context, viewer *domain.Employee) ([]*domain.DosageAssignment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleAssignments(items, viewer), nil
}

func (s *DosageAssignmentService) Create(ctx context.Context, a *domain.DosageAssignment) (int64, error) {
	if err := s.requireCase(ctx, a.CaseRecordID); err != nil {
		return 0, err
	}
	a.Status = domain.NormalizeStatus(a.Status)
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return 0, err
	}
	if a.Qualitative != "" {
		s.syncValue(ctx, a.CaseRecordID, "", a.Qualitative)
	}
	return id, nil
}

func (s *DosageAssignmentService) Update(ctx context.Context, a *domain.DosageAssignment) error {
	prev, err := s.repo.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := s.requireCase(ctx, a.CaseRecordID); err != nil {
		return err
	}
	a.Status = domain.NormalizeStatus(a.Status)
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}
	if a.Qualitative != "" && a.Qualitative != prev.Qualitative {
		s.syncValue(ctx, a.CaseRecordID, prev.Qualitative, a.Qualitative)
	}
	return nil
}

func (s *DosageAssignmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// syncValue pushes the measured value into the case document and mirrors it
// on the record. The push uses the previous value as a text fallback for
// documents whose control was flattened by an editor. Sync failures are
// logged, not returned: the assignment itself is already saved.
func (s *DosageAssignmentService) syncValue(ctx context.Context, caseID int64, oldValue, value string) {
	if err := s.docs.PushField(ctx, caseID, docsync.TagQuantitative, oldValue, value); err != nil {
		s.logger.Warn("failed to push measured value into case document",
			zap.Int64("case_id", caseID), zap.Error(err))
	}
	rec, err := s.cases.Get(ctx, caseID)
	if err != nil {
		s.logger.Warn("failed to load case record for value mirror",
			zap.Int64("case_id", caseID), zap.Error(err))
		return
	}
	rec.Quantitative = value
	if err := s.cases.Update(ctx, rec); err != nil {
		s.logger.Warn("failed to mirror measured value on case record",
			zap.Int64("case_id", caseID), zap.Error(err))
	}
}

func (s *DosageAssignmentService) requireCase(ctx context.Context, caseID int64) error {
	ok, err := s.cases.Exists(ctx, caseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("case record %d: %w", caseID, domain.ErrNotFound)
	}
	return nil
}

// ToxicologyAssignmentService manages toxicology screen assignments. Saving a
// screen rewrites the results table of the linked case report.
type ToxicologyAssignmentService struct {
	repo   repository.ToxicologyAssignmentsRepository
	cases  repository.CaseRecordsRepository
	docs   *CaseRecordService
	logger *zap.Logger
}

func NewToxicologyAssignmentService(
	repo repository.ToxicologyAssignmentsRepository,
	cases repository.CaseRecordsRepository,
	docs *CaseRecordService,
	logger *zap.Logger,
) *ToxicologyAssignmentService {
	return &ToxicologyAssignmentService{repo: repo, cases: cases, docs: docs, logger: logger}
}

func (s *ToxicologyAssignmentService) Get(ctx context.Context, id int64) (*domain.ToxicologyAssignment, error) {
	return s.repo.Get(ctx, id)
}

func (s *ToxicologyAssignmentService) List(ctx context.Context, viewer *domain.Employee) ([]*domain.ToxicologyAssignment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleAssignments(items, viewer), nil
}

func (s *ToxicologyAssignmentService) Create(ctx context.Context, a *domain.ToxicologyAssignment) (int64, error) {
	if err := s.requireCase(ctx, a.CaseRecordID); err != nil {
		return 0, err
	}
	a.Status = domain.NormalizeStatus(a.Status)
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return 0, err
	}
	// A brand-new assignment with no screen yet has nothing to say about the
	// document; syncing here would only overwrite the template's table body.
	if len(a.Results.Entries()) > 0 {
		s.syncResults(ctx, a)
	}
	return id, nil
}

func (s *ToxicologyAssignmentService) Update(ctx context.Context, a *domain.ToxicologyAssignment) error {
	if _, err := s.repo.Get(ctx, a.ID); err != nil {
		return err
	}
	if err := s.requireCase(ctx, a.CaseRecordID); err != nil {
		return err
	}
	a.Status = domain.NormalizeStatus(a.Status)
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}
	s.syncResults(ctx, a)
	return nil
}

func (s *ToxicologyAssignmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// syncResults rewrites the case document's results table. An empty screen
// still syncs: clearing every outcome must replace the previous rows with the
// placeholder row, not leave them standing.
func (s *ToxicologyAssignmentService) syncResults(ctx context.Context, a *domain.ToxicologyAssignment) {
	if err := s.docs.PushResults(ctx, a.CaseRecordID, a.Results); err != nil {
		s.logger.Warn("failed to push screen results into case document",
			zap.Int64("case_id", a.CaseRecordID), zap.Error(err))
	}
}

func (s *ToxicologyAssignmentService) requireCase(ctx context.Context, caseID int64) error {
	ok, err := s.cases.Exists(ctx, caseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("case record %d: %w", caseID, domain.ErrNotFound)
	}
	return nil
}
