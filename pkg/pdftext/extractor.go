// Package pdftext pulls plain text out of PDF documents page by page.
package pdftext

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// ErrDocumentParse indicates the file could not be read as a PDF document.
var ErrDocumentParse = errors.New("document could not be parsed as pdf")

const pdfMime = "application/pdf"

// Extractor reads the text layer of PDF files.
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor constructs an extractor.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger.With().Str("component", "pdf_extractor").Logger()}
}

// ExtractFile returns the text of every page in order, each page followed by a newline.
// A page whose text cannot be read contributes an empty string.
func (e *Extractor) ExtractFile(path string) (text string, err error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", errors.Join(ErrDocumentParse, err))
	}
	if !detected.Is(pdfMime) {
		return "", fmt.Errorf("detected %s: %w", detected.String(), ErrDocumentParse)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", errors.Join(ErrDocumentParse, err))
	}
	defer file.Close()

	// the parser panics on some broken cross-reference tables and dictionaries,
	// both while opening and while walking the page tree
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Interface("panic", r).Msg("pdf parser panicked")
			text = ""
			err = fmt.Errorf("read pdf: %v: %w", r, ErrDocumentParse)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat pdf: %w", errors.Join(ErrDocumentParse, err))
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", errors.Join(ErrDocumentParse, err))
	}

	pages := reader.NumPage()
	builder := strings.Builder{}
	for i := 1; i <= pages; i++ {
		builder.WriteString(e.pageText(reader, i))
		builder.WriteString("\n")
	}

	e.logger.Debug().Int("pages", pages).Int("chars", builder.Len()).Msg("pdf text extracted")
	return builder.String(), nil
}

func (e *Extractor) pageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Int("page", num).Interface("panic", r).Msg("page extraction panicked")
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		e.logger.Warn().Err(err).Int("page", num).Msg("page extraction failed")
		return ""
	}
	return content
}
