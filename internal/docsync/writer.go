package docsync

import (
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/docx"
)

// Formatting policy for every generated run. System-wide default, not
// configurable per call.
const (
	runFont     = "Times New Roman"
	runSizeHalf = 24 // 12pt
)

// Writer pushes field values into a document package in place.
type Writer struct {
	logger *zap.Logger
}

func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteField locates tag inside pkg and replaces its content with value.
// Lookup order: content controls matched by tag (case-insensitive), then the
// literal {{tag}} text marker. Returns false when neither is present.
func (w *Writer) WriteField(pkg *docx.Package, tag, value string) bool {
	if w.writeControls(pkg, tag, value) {
		return true
	}
	return w.writeMarker(pkg, tag, value)
}

// WriteFieldWithFallback behaves like WriteField but, when neither a control
// nor a marker matches, replaces the first exact occurrence of the previous
// value. The fallback is heuristic (a coincidental text match would also be
// rewritten) and is logged distinctly from an exact-tag match.
func (w *Writer) WriteFieldWithFallback(pkg *docx.Package, tag, oldValue, value string) bool {
	if w.WriteField(pkg, tag, value) {
		return true
	}
	if oldValue == "" || oldValue == value {
		return false
	}
	for _, p := range pkg.AllParagraphs() {
		for _, e := range p.RunElements() {
			run, ok := e.AsRun()
			if !ok {
				continue
			}
			text := run.Text()
			if !strings.Contains(text, oldValue) {
				continue
			}
			run.SetText(strings.Replace(text, oldValue, value, 1))
			pkg.MarkDirty()
			w.logger.Warn("field updated via old-value fallback",
				zap.String("tag", tag),
				zap.String("old_value", oldValue))
			return true
		}
	}
	return false
}

func (w *Writer) writeControls(pkg *docx.Package, tag, value string) bool {
	found := false
	for _, p := range pkg.AllParagraphs() {
		for _, e := range p.RunElements() {
			sdt, ok := e.AsSDT()
			if !ok || !strings.EqualFold(sdt.Tag(), tag) {
				continue
			}
			sdt.ReplaceRuns(buildRuns(value))
			found = true
		}
	}
	if found {
		pkg.MarkDirty()
		w.logger.Debug("content control updated", zap.String("tag", tag))
	}
	return found
}

func (w *Writer) writeMarker(pkg *docx.Package, tag, value string) bool {
	marker := "{{" + tag + "}}"
	found := false
	for _, p := range pkg.AllParagraphs() {
		for _, e := range p.RunElements() {
			run, ok := e.AsRun()
			if !ok {
				continue
			}
			text := run.Text()
			if !strings.Contains(text, marker) {
				continue
			}
			// Marker replacement stays inside the run, keeping its
			// formatting; no bold splitting here.
			run.SetText(strings.ReplaceAll(text, marker, value))
			found = true
		}
	}
	if found {
		pkg.MarkDirty()
		w.logger.Debug("text marker replaced", zap.String("tag", tag))
	}
	return found
}

// buildRuns turns value into styled runs. Segments wrapped in **...** become
// bold; empty segments produced by the split are dropped.
func buildRuns(value string) []*docx.Node {
	var runs []*docx.Node
	for i, seg := range strings.Split(value, "**") {
		if seg == "" {
			continue
		}
		runs = append(runs, docx.NewRun(seg, docx.RunStyle{
			Bold:     i%2 == 1,
			Font:     runFont,
			SizeHalf: runSizeHalf,
		}))
	}
	return runs
}
