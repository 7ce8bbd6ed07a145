package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pdftext/internal/models"
	"pdftext/internal/util"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

// Extractor turns a document on disk into per-page text. Implementations do
// not normalize the text they return.
type Extractor interface {
	Extract(ctx context.Context, path string) (*models.Document, error)
}

// PDFExtractor reads the embedded text layer with github.com/ledongthuc/pdf.
// Scanned pages without a text layer come back empty.
type PDFExtractor struct {
	// MaxPages limits how many leading pages are read; 0 reads all of them.
	MaxPages int
	Logger   zerolog.Logger
}

func NewPDFExtractor(maxPages int, logger zerolog.Logger) *PDFExtractor {
	return &PDFExtractor{MaxPages: maxPages, Logger: logger}
}

// Extract fails as a whole: a page that cannot be read discards the pages
// before it.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (doc *models.Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open pdf: %s is a directory", path)
	}
	if err := sniffHeader(f); err != nil {
		return nil, err
	}
	id, err := util.SHA256HexFromReader(io.NewSectionReader(f, 0, info.Size()))
	if err != nil {
		return nil, fmt.Errorf("hash pdf: %w", err)
	}
	log := e.Logger.With().Str("doc_id", id).Logger()

	// ledongthuc/pdf panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	src, err := openPageSource(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	numPages := src.NumPage()
	limit := numPages
	if e.MaxPages > 0 && e.MaxPages < limit {
		limit = e.MaxPages
	}
	log.Debug().Int("pages", numPages).Int("limit", limit).Msg("pdf opened")

	doc = &models.Document{ID: id, Path: path, Pages: make([]models.Page, 0, limit)}
	for i := 1; i <= limit; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := src.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, models.Page{Number: i, Text: text})
	}
	log.Debug().Int("pages", len(doc.Pages)).Int("chars", doc.CharCount()).Msg("pdf extracted")
	return doc, nil
}

// pageSource is the part of the PDF library the extractor relies on.
// Pages are numbered from 1.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

var openPageSource = func(r io.ReaderAt, size int64) (pageSource, error) {
	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return ledongthucSource{r: pr}, nil
}

type ledongthucSource struct {
	r *pdf.Reader
}

func (s ledongthucSource) NumPage() int { return s.r.NumPage() }

// PageText returns "" for a missing page object. nil fonts lets the
// library resolve the page's own font resources.
func (s ledongthucSource) PageText(i int) (string, error) {
	p := s.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func sniffHeader(r io.ReaderAt) error {
	buf := make([]byte, headerWindow)
	n, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read pdf header: %w", err)
	}
	if !bytes.Contains(buf[:n], []byte("%PDF-")) {
		return util.ErrNotPDF
	}
	return nil
}

// ExtractText runs ex and returns the aggregated page text, or
// util.ErrNoExtractableText when no page carries text.
func ExtractText(ctx context.Context, ex Extractor, path string) (string, error) {
	doc, err := ex.Extract(ctx, path)
	if err != nil {
		return "", err
	}
	text := doc.Text()
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}
