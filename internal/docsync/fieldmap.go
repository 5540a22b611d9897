package docsync

import (
	"strings"

	"labdoc-data/internal/domain"
)

// Field binds a content-control tag to the case-record attribute it renders.
type Field struct {
	Tag string
	Get func(*domain.CaseRecord) string
	Set func(*domain.CaseRecord, string)
}

// Tags addressed individually by the assignment flows.
const (
	TagQualitative  = "CUALITATIVO"
	TagQuantitative = "CUANTITATIVO"
)

// CaseFields is the authoritative tag table for case-report documents, in
// template order. Tags match the content controls authored into the report
// template; matching is case-insensitive.
var CaseFields = []Field{
	{"NOMBRESYAPELLIDOS",
		func(r *domain.CaseRecord) string { return r.SubjectName },
		func(r *domain.CaseRecord, v string) { r.SubjectName = v }},
	{"DNI",
		func(r *domain.CaseRecord) string { return r.DNI },
		func(r *domain.CaseRecord, v string) { r.DNI = v }},
	{"NOMBREOFICIO",
		func(r *domain.CaseRecord) string { return r.MemoName },
		func(r *domain.CaseRecord, v string) { r.MemoName = v }},
	{"NUMERODOCUMENTO",
		func(r *domain.CaseRecord) string { return r.DocumentNumber },
		func(r *domain.CaseRecord, v string) { r.DocumentNumber = v }},
	{"PROCEDENCIA",
		func(r *domain.CaseRecord) string { return r.Origin },
		func(r *domain.CaseRecord, v string) { r.Origin = v }},
	{"TIPOMUESTRA",
		func(r *domain.CaseRecord) string { return r.SampleType },
		func(r *domain.CaseRecord, v string) { r.SampleType = v }},
	{"PERSONAQUECONDUCE",
		func(r *domain.CaseRecord) string { return r.ConductingOfficer },
		func(r *domain.CaseRecord, v string) { r.ConductingOfficer = v }},
	{"CUALITATIVO",
		func(r *domain.CaseRecord) string { return r.Qualitative },
		func(r *domain.CaseRecord, v string) { r.Qualitative = v }},
	{"CUANTITATIVO",
		func(r *domain.CaseRecord) string { return r.Quantitative },
		func(r *domain.CaseRecord, v string) { r.Quantitative = v }},
}

// FieldByTag looks a field up by tag, case-insensitively.
func FieldByTag(tag string) (Field, bool) {
	for _, f := range CaseFields {
		if strings.EqualFold(f.Tag, tag) {
			return f, true
		}
	}
	return Field{}, false
}

// Memorandum marker names. Memo templates use {{...}} text markers rather
// than content controls, so no bold splitting applies to them.
const (
	MarkerDate            = "FECHA"
	MarkerMemoNumber      = "NRO_OFICIO"
	MarkerRank            = "GRADO"
	MarkerOfficer         = "RESPONSABLE"
	MarkerReference       = "REFERENCIA"
	MarkerReferenceReport = "NRO_INFORME_REFERENCIA"

	MarkerSubjectName  = "NOMBRE"
	MarkerSubjectDNI   = "DNI"
	MarkerSubjectAge   = "EDAD"
	MarkerSampleType   = "MUESTRA"
	MarkerReportNumber = "INFORME"
)
