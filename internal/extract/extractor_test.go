package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdftext/internal/models"
	"pdftext/internal/pdffixture"
	"pdftext/internal/util"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestExtractReadsPagesInOrder(t *testing.T) {
	path := pdffixture.Write(t, "Alpha page", "Bravo page")
	doc, err := NewPDFExtractor(0, zerolog.Nop()).Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	require.Equal(t, 1, doc.Pages[0].Number)
	require.Contains(t, doc.Pages[0].Text, "Alpha")
	require.Contains(t, doc.Pages[1].Text, "Bravo")
	require.Len(t, doc.ID, 64)

	text := doc.Text()
	require.Less(t, strings.Index(text, "Alpha"), strings.Index(text, "Bravo"))
	require.Contains(t, text, "\n\n")
}

func TestExtractHonorsMaxPages(t *testing.T) {
	path := pdffixture.Write(t, "Alpha", "Bravo", "Charlie")
	doc, err := NewPDFExtractor(2, zerolog.Nop()).Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	require.NotContains(t, doc.Text(), "Charlie")
}

func TestExtractTextEmptyDocument(t *testing.T) {
	path := pdffixture.Write(t, "")
	_, err := ExtractText(context.Background(), NewPDFExtractor(0, zerolog.Nop()), path)
	require.ErrorIs(t, err, util.ErrNoExtractableText)
	require.Equal(t, ErrorEmpty, ClassifyError(err))
}

func TestExtractMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := ExtractText(context.Background(), NewPDFExtractor(0, zerolog.Nop()), path)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Equal(t, ErrorNotFound, ClassifyError(err))
}

func TestExtractRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no header"), 0o644))
	_, err := NewPDFExtractor(0, zerolog.Nop()).Extract(context.Background(), path)
	require.ErrorIs(t, err, util.ErrNotPDF)
	require.Equal(t, ErrorNotPDF, ClassifyError(err))
}

func TestExtractCorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nthis is not an object graph\n"), 0o644))
	doc, err := NewPDFExtractor(0, zerolog.Nop()).Extract(context.Background(), path)
	require.Error(t, err)
	require.Nil(t, doc)
	require.Equal(t, ErrorMalformed, ClassifyError(err))
}

func TestExtractDirectory(t *testing.T) {
	_, err := NewPDFExtractor(0, zerolog.Nop()).Extract(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestExtractCanceledContext(t *testing.T) {
	path := pdffixture.Write(t, "Alpha")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPDFExtractor(0, zerolog.Nop()).Extract(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, ErrorCanceled, ClassifyError(err))
}

type stubExtractor struct {
	pages []string
	err   error
}

func (s stubExtractor) Extract(ctx context.Context, path string) (*models.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	doc := &models.Document{Path: path}
	for i, p := range s.pages {
		doc.Pages = append(doc.Pages, models.Page{Number: i + 1, Text: p})
	}
	return doc, nil
}

func TestExtractTextAggregates(t *testing.T) {
	text, err := ExtractText(context.Background(), stubExtractor{pages: []string{" one ", "", "two"}}, "x.pdf")
	require.NoError(t, err)
	require.Equal(t, "one \n\ntwo", text)

	boom := errors.New("boom")
	_, err = ExtractText(context.Background(), stubExtractor{err: boom}, "x.pdf")
	require.ErrorIs(t, err, boom)
}

type fakeSource struct {
	pages   []string
	failAt  int
	panicAt int
	err     error
}

func (s fakeSource) NumPage() int { return len(s.pages) }

func (s fakeSource) PageText(i int) (string, error) {
	if i == s.panicAt {
		panic("invalid xref entry")
	}
	if i == s.failAt {
		return "", s.err
	}
	return s.pages[i-1], nil
}

func useSource(t *testing.T, src pageSource) string {
	t.Helper()
	orig := openPageSource
	openPageSource = func(io.ReaderAt, int64) (pageSource, error) { return src, nil }
	t.Cleanup(func() { openPageSource = orig })

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%%EOF\n"), 0o644))
	return path
}

func TestExtractRecoversLibraryPanic(t *testing.T) {
	path := useSource(t, fakeSource{pages: []string{"one", "two"}, panicAt: 2})
	doc, err := NewPDFExtractor(0, zerolog.Nop()).Extract(context.Background(), path)
	require.Nil(t, doc)
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "malformed pdf"), err.Error())
	require.Contains(t, err.Error(), "invalid xref entry")
	require.Equal(t, ErrorMalformed, ClassifyError(err))
}

func TestExtractPageErrorFailsDocument(t *testing.T) {
	badFont := errors.New("bad font program")
	path := useSource(t, fakeSource{pages: []string{"one", "two", "three"}, failAt: 2, err: badFont})
	doc, err := NewPDFExtractor(0, zerolog.Nop()).Extract(context.Background(), path)
	require.Nil(t, doc)
	require.ErrorIs(t, err, badFont)
	require.Contains(t, err.Error(), "read pdf page 2")
	require.Equal(t, ErrorMalformed, ClassifyError(err))
}

func TestExtractLogsCharCount(t *testing.T) {
	path := useSource(t, fakeSource{pages: []string{"blå", "", "bil"}})
	var logs bytes.Buffer
	doc, err := NewPDFExtractor(0, zerolog.New(&logs).Level(zerolog.DebugLevel)).Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 3)
	require.Equal(t, "blå\n\nbil", doc.Text())
	require.Contains(t, logs.String(), `"chars":6`)
	require.Contains(t, logs.String(), `"doc_id":"`)
}
