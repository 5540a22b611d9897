package docsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labdoc-data/internal/docx"
)

func TestReadFieldsCollectsTaggedControls(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		sdtBody("DNI", "44556677")+sdtBody("PROCEDENCIA", "  Comisaria Central  ")))
	require.NoError(t, err)

	fields := NewReader(zap.NewNop()).ReadFields(pkg)
	assert.Equal(t, map[string]string{
		"DNI":         "44556677",
		"PROCEDENCIA": "Comisaria Central",
	}, fields)
}

func TestReadFieldsLastOccurrenceWins(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		sdtBody("DNI", "first")+sdtBody("DNI", "second")))
	require.NoError(t, err)

	fields := NewReader(zap.NewNop()).ReadFields(pkg)
	assert.Equal(t, "second", fields["DNI"])
}

func TestReadFieldsSkipsEmptyTextAndEmptyTags(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		sdtBody("DNI", "  ")+
			`<w:p><w:sdt><w:sdtPr/><w:sdtContent><w:r><w:t>untagged</w:t></w:r></w:sdtContent></w:sdt></w:p>`))
	require.NoError(t, err)

	fields := NewReader(zap.NewNop()).ReadFields(pkg)
	assert.Empty(t, fields)
}

func TestReadFieldsSeesTableCellControls(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		`<w:tbl><w:tr><w:tc>`+sdtBody("TIPOMUESTRA", "SANGRE")+`</w:tc></w:tr></w:tbl>`))
	require.NoError(t, err)

	fields := NewReader(zap.NewNop()).ReadFields(pkg)
	assert.Equal(t, "SANGRE", fields["TIPOMUESTRA"])
}
