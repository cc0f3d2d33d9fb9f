package crawl

import (
	"os"
	"path/filepath"

	"github.com/citegraph/citegraph/internal/paper"
	"github.com/citegraph/citegraph/internal/pdf"
)

// DirPDFSource serves page texts from a directory of already-retrieved
// PDFs. A paper's own PDFPath wins; otherwise <dir>/<paper-id>.pdf is
// tried. Missing files mean "no PDF retrievable", which the crawler treats
// as a normal terminal outcome for the backward direction.
type DirPDFSource struct {
	Dir string
}

// PageTexts returns per-page text lines for the paper's PDF, or nil when no
// PDF exists for it.
func (s DirPDFSource) PageTexts(p paper.Paper) ([][]string, error) {
	path := p.PDFPath
	if path == "" {
		path = filepath.Join(s.Dir, p.ID+".pdf")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return pdf.PageTexts(path)
}
