package domain

// DosageMemorandum maps to dosage_memoranda (legacy "oficio_dosaje"). The
// dosage memo rides on the linked case record's document: its download serves
// the case blob when one exists.
type DosageMemorandum struct {
	ID           int64  `db:"id"`
	Date         string `db:"memo_date"` // ISO date as entered, e.g. "2026-01-26"
	MemoNumber   string `db:"memo_number"`
	Rank         string `db:"rank"` // grado PNP
	OfficerName  string `db:"officer_name"`
	Reference    string `db:"reference"`
	ReportNumber string `db:"report_number"`
	Blob         []byte `db:"blob"`
	CaseRecordID int64  `db:"case_record_id"`
}

// ToxicologyMemorandum maps to toxicology_memoranda (legacy
// "oficio_toxicologia"). It owns its document blob outright.
type ToxicologyMemorandum struct {
	ID              int64  `db:"id"`
	Date            string `db:"memo_date"`
	MemoNumber      string `db:"memo_number"`
	Rank            string `db:"rank"`
	OfficerName     string `db:"officer_name"`
	ReferenceReport string `db:"reference_report"` // nro informe de referencia
	Blob            []byte `db:"blob"`
	CaseRecordID    int64  `db:"case_record_id"`
}
