package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"pdftext/internal/util"
)

func TestClassifyError(t *testing.T) {
	cases := map[error]ErrorType{
		fmt.Errorf("open pdf: %w", fs.ErrNotExist):          ErrorNotFound,
		fmt.Errorf("open pdf: %w", fs.ErrPermission):        ErrorPermission,
		util.ErrNotPDF:                                      ErrorNotPDF,
		util.ErrNoExtractableText:                           ErrorEmpty,
		context.Canceled:                                    ErrorCanceled,
		fmt.Errorf("read pdf: %w", errors.New("bad xref")): ErrorMalformed,
	}
	for err, want := range cases {
		if got := ClassifyError(err); got != want {
			t.Fatalf("classify %q: got %s want %s", err, got, want)
		}
	}
	if got := ClassifyError(nil); got != "" {
		t.Fatalf("classify nil: got %s", got)
	}
}
