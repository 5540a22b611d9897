package docsync

import (
	"fmt"

	"go.uber.org/zap"

	"labdoc-data/internal/docx"
	"labdoc-data/internal/domain"
)

// Syncer coordinates push/pull synchronization between record fields and a
// document blob. Each method opens the blob, applies one mutation session and
// serializes exactly once.
type Syncer struct {
	writer *Writer
	reader *Reader
	logger *zap.Logger
}

func NewSyncer(logger *zap.Logger) *Syncer {
	return &Syncer{
		writer: NewWriter(logger),
		reader: NewReader(logger),
		logger: logger,
	}
}

// PushField writes a single tagged value into blob, falling back to the
// previous value's text when the tag is gone (see WriteFieldWithFallback).
// Returns the new blob and whether anything changed.
func (s *Syncer) PushField(blob []byte, tag, oldValue, value string) ([]byte, bool, error) {
	pkg, err := docx.Open(blob)
	if err != nil {
		return nil, false, err
	}
	if !s.writer.WriteFieldWithFallback(pkg, tag, oldValue, value) {
		s.logger.Warn("field not found in document", zap.String("tag", tag))
		return blob, false, nil
	}
	out, err := pkg.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("serialize after field push: %w", err)
	}
	return out, true, nil
}

// PushCaseFields writes every non-empty mapped case-record field into blob.
// Returns the new blob and how many fields were placed.
func (s *Syncer) PushCaseFields(blob []byte, rec *domain.CaseRecord) ([]byte, int, error) {
	pkg, err := docx.Open(blob)
	if err != nil {
		return nil, 0, err
	}
	placed := 0
	for _, f := range CaseFields {
		value := f.Get(rec)
		if value == "" {
			continue
		}
		if s.writer.WriteField(pkg, f.Tag, value) {
			placed++
		}
	}
	if placed == 0 {
		return blob, 0, nil
	}
	out, err := pkg.Bytes()
	if err != nil {
		return nil, 0, fmt.Errorf("serialize after case push: %w", err)
	}
	return out, placed, nil
}

// PushToxicologyResults rewrites the results table from a toxicology screen.
func (s *Syncer) PushToxicologyResults(blob []byte, results domain.ToxicologyResults) ([]byte, bool, error) {
	pkg, err := docx.Open(blob)
	if err != nil {
		return nil, false, err
	}
	var rows []ResultRow
	for _, e := range results.Entries() {
		rows = append(rows, ResultRow{Substance: e.Substance, Outcome: e.Outcome})
	}
	if !RewriteResultsTable(pkg, rows, s.logger) {
		return blob, false, nil
	}
	out, err := pkg.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("serialize after table rewrite: %w", err)
	}
	return out, true, nil
}

// PushMarkers replaces {{name}} text markers with the given values. Used for
// memorandum documents, whose templates carry markers instead of controls.
func (s *Syncer) PushMarkers(blob []byte, fields map[string]string) ([]byte, int, error) {
	pkg, err := docx.Open(blob)
	if err != nil {
		return nil, 0, err
	}
	placed := 0
	for name, value := range fields {
		if s.writer.WriteField(pkg, name, value) {
			placed++
		}
	}
	if placed == 0 {
		return blob, 0, nil
	}
	out, err := pkg.Bytes()
	if err != nil {
		return nil, 0, fmt.Errorf("serialize after marker push: %w", err)
	}
	return out, placed, nil
}

// ExtractCaseFields reads tagged values out of an edited blob into rec.
// Returns how many mapped fields were refreshed; unmapped tags are ignored.
func (s *Syncer) ExtractCaseFields(blob []byte, rec *domain.CaseRecord) (int, error) {
	pkg, err := docx.Open(blob)
	if err != nil {
		return 0, err
	}
	applied := 0
	for tag, text := range s.reader.ReadFields(pkg) {
		f, ok := FieldByTag(tag)
		if !ok {
			continue
		}
		f.Set(rec, text)
		applied++
	}
	return applied, nil
}
