// Package pdffixture writes small PDF documents for tests.
package pdffixture

import (
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// Write renders one A4 page per entry of pages into a file under t.TempDir
// and returns its path. An empty entry yields a page without a text layer.
// Text must be representable in cp1252, the encoding of the core fonts.
func Write(t testing.TB, pages ...string) string {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Cell(40, 10, text)
		}
	}
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("write pdf fixture: %v", err)
	}
	return path
}
