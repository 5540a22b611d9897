package docsync

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labdoc-data/internal/docx"
)

const fixtureContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

func fixtureDoc(t *testing.T, body string) []byte {
	t.Helper()
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body +
		`</w:body></w:document>`
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct{ name, data string }{
		{"[Content_Types].xml", fixtureContentTypes},
		{"word/document.xml", documentXML},
	} {
		w, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(part.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func sdtBody(tag, text string) string {
	return `<w:p><w:sdt><w:sdtPr><w:tag w:val="` + tag + `"/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>` + text + `</w:t></w:r></w:sdtContent></w:sdt></w:p>`
}

func fixtureDocumentXML(t *testing.T, blob []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestWriteFieldReplacesControl(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t, sdtBody("DNI", "old")))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	assert.True(t, w.WriteField(pkg, "DNI", "44556677"))
	assert.True(t, pkg.Dirty())

	sdt, _ := pkg.AllParagraphs()[0].RunElements()[0].AsSDT()
	assert.Equal(t, "44556677", sdt.Text())
}

func TestWriteFieldMatchesTagCaseInsensitively(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t, sdtBody("dni", "old")))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	assert.True(t, w.WriteField(pkg, "DNI", "11223344"))
}

func TestWriteFieldBoldSegments(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t, sdtBody("CUALITATIVO", "")))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	require.True(t, w.WriteField(pkg, "CUALITATIVO", "resultado **POSITIVO** confirmado"))

	out, err := pkg.Bytes()
	require.NoError(t, err)
	xml := fixtureDocumentXML(t, out)

	// Three runs: plain, bold, plain. The bold marker itself never lands in
	// the document.
	assert.NotContains(t, xml, "**")
	assert.Contains(t, xml, `<w:b/><w:sz w:val="24"/><w:szCs w:val="24"/></w:rPr><w:t xml:space="preserve">POSITIVO</w:t>`)
	assert.Contains(t, xml, `<w:t xml:space="preserve">resultado </w:t>`)
	assert.Contains(t, xml, `<w:t xml:space="preserve"> confirmado</w:t>`)
	assert.Contains(t, xml, `w:ascii="Times New Roman"`)
}

func TestWriteFieldMarkerFallback(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		`<w:p><w:r><w:t>Lima, {{FECHA}}.</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	assert.True(t, w.WriteField(pkg, "FECHA", "2 de enero del 2026"))
	assert.Equal(t, "Lima, 2 de enero del 2026.", pkg.AllParagraphs()[0].Text())
}

func TestWriteFieldMarkerKeepsRunFormatting(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		`<w:p><w:r><w:rPr><w:i/></w:rPr><w:t>{{GRADO}}</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	require.True(t, w.WriteField(pkg, "GRADO", "Mayor PNP"))

	out, err := pkg.Bytes()
	require.NoError(t, err)
	xml := fixtureDocumentXML(t, out)
	assert.Contains(t, xml, "<w:i/>")
	assert.Contains(t, xml, "Mayor PNP")
}

func TestWriteFieldReturnsFalseWhenAbsent(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t, `<w:p><w:r><w:t>nothing here</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	assert.False(t, w.WriteField(pkg, "DNI", "x"))
	assert.False(t, pkg.Dirty())
}

func TestWriteFieldWithFallbackRewritesOldValue(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		`<w:p><w:r><w:t>Dosaje: 0.50 g/l</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	assert.True(t, w.WriteFieldWithFallback(pkg, "CUANTITATIVO", "0.50", "1.20"))
	assert.Equal(t, "Dosaje: 1.20 g/l", pkg.AllParagraphs()[0].Text())
}

func TestWriteFieldWithFallbackFirstOccurrenceOnly(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		`<w:p><w:r><w:t>0.50</w:t></w:r></w:p><w:p><w:r><w:t>0.50</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	require.True(t, w.WriteFieldWithFallback(pkg, "CUANTITATIVO", "0.50", "1.20"))
	paras := pkg.AllParagraphs()
	assert.Equal(t, "1.20", paras[0].Text())
	assert.Equal(t, "0.50", paras[1].Text())
}

func TestWriteFieldWithFallbackPrefersControl(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t,
		sdtBody("CUANTITATIVO", "0.50")+`<w:p><w:r><w:t>0.50</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	require.True(t, w.WriteFieldWithFallback(pkg, "CUANTITATIVO", "0.50", "1.20"))

	sdt, _ := pkg.AllParagraphs()[0].RunElements()[0].AsSDT()
	assert.Equal(t, "1.20", sdt.Text())
	// The loose text is untouched: the control matched first.
	assert.Equal(t, "0.50", pkg.AllParagraphs()[1].Text())
}

func TestWriteFieldWithFallbackNoMatch(t *testing.T) {
	pkg, err := docx.Open(fixtureDoc(t, `<w:p><w:r><w:t>unrelated</w:t></w:r></w:p>`))
	require.NoError(t, err)

	w := NewWriter(zap.NewNop())
	assert.False(t, w.WriteFieldWithFallback(pkg, "CUANTITATIVO", "", "1.20"))
	assert.False(t, w.WriteFieldWithFallback(pkg, "CUANTITATIVO", "same", "same"))
	assert.False(t, pkg.Dirty())
}
