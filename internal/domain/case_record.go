package domain

import "database/sql"

// CaseRecord maps to the case_records table (the original "documentos").
// The Blob column holds the Word document for this case; it is nil until the
// record is opened in the editor for the first time and saved.
type CaseRecord struct {
	ID                int64  `db:"id"`
	SubjectName       string `db:"subject_name"`       // nombres y apellidos
	DNI               string `db:"dni"`
	Age               string `db:"age"`
	Qualitative       string `db:"qualitative"`        // cualitativo
	Quantitative      string `db:"quantitative"`       // cuantitativo
	DocumentNumber    string `db:"document_number"`
	ReportNumber      string `db:"report_number"`      // nro de informe pericial
	MemoName          string `db:"memo_name"`          // nombre de oficio
	Origin            string `db:"origin"`             // procedencia
	SampleType        string `db:"sample_type"`        // tipo de muestra
	ConductingOfficer string `db:"conducting_officer"` // persona que conduce

	Blob []byte `db:"blob"`

	EmployeeID sql.NullInt64 `db:"employee_id"`
}
