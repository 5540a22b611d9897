package docsync

import (
	"strings"

	"go.uber.org/zap"

	"labdoc-data/internal/docx"
)

// Reader extracts tagged field values back out of an edited document.
type Reader struct {
	logger *zap.Logger
}

func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadFields walks the package in the writer's scan order and collects
// (tag, trimmed text) for every content control carrying a non-empty tag and
// non-empty text. When a tag repeats the last occurrence wins. Controls with
// an empty tag point at a mis-authored template and are logged, not dropped
// silently.
func (r *Reader) ReadFields(pkg *docx.Package) map[string]string {
	fields := make(map[string]string)
	for _, p := range pkg.AllParagraphs() {
		for _, e := range p.RunElements() {
			sdt, ok := e.AsSDT()
			if !ok {
				continue
			}
			tag := sdt.Tag()
			if tag == "" {
				r.logger.Warn("content control without tag, template authored incorrectly",
					zap.String("text", sdt.Text()))
				continue
			}
			text := strings.TrimSpace(sdt.Text())
			if text == "" {
				continue
			}
			fields[tag] = text
		}
	}
	return fields
}
