package docsync

import (
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/docx"
)

// Header keywords that identify the results table of a report template.
var resultHeaderKeywords = []string{"EXAMEN", "RESULTADO"}

// Placeholder row emitted when a screen has no active results. Always writing
// a row keeps synchronized reports auditable: an empty table body is
// indistinguishable from a sync that never ran.
const (
	placeholderSubstance = "NINGUNO"
	placeholderOutcome   = "NEGATIVO"
)

// ResultRow is one body row of the synchronized results table.
type ResultRow struct {
	Substance string
	Outcome   string
}

// OrderResults sorts rows for emission: every positive entry before every
// negative one, preserving the incoming (declared) order inside each
// category.
func OrderResults(rows []ResultRow) []ResultRow {
	ordered := make([]ResultRow, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(r.Outcome, "POSITIVO") {
			ordered = append(ordered, r)
		}
	}
	for _, r := range rows {
		if !strings.EqualFold(r.Outcome, "POSITIVO") {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// RewriteResultsTable rebuilds the body of the first table whose header row
// mentions a results keyword: the header row stays, every other row is
// dropped and one row per entry is appended (substance upper-cased on the
// left, outcome bold on the right). Returns false when no results table
// exists in the package.
func RewriteResultsTable(pkg *docx.Package, rows []ResultRow, logger *zap.Logger) bool {
	for _, tbl := range pkg.Tables() {
		header := tbl.HeaderText()
		if !headerMatches(header) {
			continue
		}
		tbl.TruncateToHeader()
		out := OrderResults(rows)
		if len(out) == 0 {
			out = []ResultRow{{Substance: placeholderSubstance, Outcome: placeholderOutcome}}
		}
		for _, row := range out {
			tbl.AppendRow(buildResultRow(row))
		}
		pkg.MarkDirty()
		logger.Debug("results table rewritten", zap.Int("rows", len(out)))
		return true
	}
	logger.Warn("no results table found in document")
	return false
}

func headerMatches(header string) bool {
	for _, kw := range resultHeaderKeywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

func buildResultRow(row ResultRow) *docx.Node {
	style := docx.RunStyle{Font: runFont, SizeHalf: runSizeHalf}
	boldStyle := style
	boldStyle.Bold = true
	left := docx.NewTableCell(docx.NewParagraph(
		docx.NewRun(strings.ToUpper(row.Substance), style)))
	right := docx.NewTableCell(docx.NewParagraph(
		docx.NewRun(row.Outcome, boldStyle)))
	return docx.NewTableRow(left, right)
}
