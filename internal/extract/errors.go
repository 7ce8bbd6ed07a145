package extract

import (
	"context"
	"errors"
	"os"

	"pdftext/internal/util"
)

type ErrorType string

const (
	ErrorNotFound   ErrorType = "not_found"
	ErrorPermission ErrorType = "permission"
	ErrorNotPDF     ErrorType = "not_pdf"
	ErrorEmpty      ErrorType = "empty"
	ErrorCanceled   ErrorType = "canceled"
	ErrorMalformed  ErrorType = "malformed"
)

// ClassifyError buckets extraction failures for structured logs. Anything
// not recognized is treated as a malformed document.
func ClassifyError(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, os.ErrNotExist):
		return ErrorNotFound
	case errors.Is(err, os.ErrPermission):
		return ErrorPermission
	case errors.Is(err, util.ErrNotPDF):
		return ErrorNotPDF
	case errors.Is(err, util.ErrNoExtractableText):
		return ErrorEmpty
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCanceled
	default:
		return ErrorMalformed
	}
}
