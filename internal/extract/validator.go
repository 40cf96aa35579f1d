package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds size limit")
	ErrNotPDF       = errors.New("not a valid PDF")
)

// Validator performs structural validation of uploaded PDFs before they
// enter the extraction pipeline.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given size constraint.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// Validate checks size bounds and parses the cross-reference structure in
// relaxed mode, returning the page count on success.
func (v *Validator) Validate(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyFile
	}
	if v.maxFileSize > 0 && int64(len(data)) > v.maxFileSize {
		return 0, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(data), v.maxFileSize)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, fmt.Errorf("%w: missing %%PDF header", ErrNotPDF)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	return ctx.PageCount, nil
}
