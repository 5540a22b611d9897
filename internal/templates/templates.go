// Package templates embeds the blank Word templates documents are rendered
// from. The case report carries tagged content controls; the memo templates
// carry {{...}} text markers.
package templates

import _ "embed"

//go:embed case_report.docx
var caseReport []byte

//go:embed dosage_memo.docx
var dosageMemo []byte

//go:embed toxicology_memo.docx
var toxicologyMemo []byte

// CaseReport returns a fresh copy of the expert-report template.
func CaseReport() []byte {
	return append([]byte(nil), caseReport...)
}

// DosageMemorandum returns a fresh copy of the dosage memo template.
func DosageMemorandum() []byte {
	return append([]byte(nil), dosageMemo...)
}

// ToxicologyMemorandum returns a fresh copy of the toxicology memo template.
func ToxicologyMemorandum() []byte {
	return append([]byte(nil), toxicologyMemo...)
}
