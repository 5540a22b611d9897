package domain

import "strings"

// Assignment status values. Anything that is not explicitly COMPLETADO is
// normalized to EN_PROCESO on write.
const (
	StatusInProgress = "EN_PROCESO"
	StatusCompleted  = "COMPLETADO"
)

// NormalizeStatus folds arbitrary caller input into one of the two statuses.
func NormalizeStatus(s string) string {
	if strings.EqualFold(s, StatusCompleted) {
		return StatusCompleted
	}
	return StatusInProgress
}

// DosageAssignment maps to dosage_assignments. Qualitative carries the
// measured value that gets pushed into the case document (CUANTITATIVO tag).
type DosageAssignment struct {
	ID           int64  `db:"id"`
	Area         string `db:"area"`
	Qualitative  string `db:"qualitative"`
	Status       string `db:"status"`
	CaseRecordID int64  `db:"case_record_id"`
	AssigneeID   int64  `db:"assignee_id"`
	IssuerID     int64  `db:"issuer_id"`
}

func (a *DosageAssignment) RecordID() int64           { return a.ID }
func (a *DosageAssignment) AssigneeEmployeeID() int64 { return a.AssigneeID }
func (a *DosageAssignment) IssuerEmployeeID() int64   { return a.IssuerID }

// ToxicologyAssignment maps to toxicology_assignments. Results is stored as a
// JSON column (resultado_toxicologico in the legacy schema).
type ToxicologyAssignment struct {
	ID           int64             `db:"id"`
	Area         string            `db:"area"`
	Status       string            `db:"status"`
	Results      ToxicologyResults `db:"results"`
	CaseRecordID int64             `db:"case_record_id"`
	AssigneeID   int64             `db:"assignee_id"`
	IssuerID     int64             `db:"issuer_id"`
}

func (a *ToxicologyAssignment) RecordID() int64           { return a.ID }
func (a *ToxicologyAssignment) AssigneeEmployeeID() int64 { return a.AssigneeID }
func (a *ToxicologyAssignment) IssuerEmployeeID() int64   { return a.IssuerID }
