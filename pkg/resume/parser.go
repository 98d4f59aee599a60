package resume

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"jobtion/pkg/fault"
)

// TextExtractor turns uploaded file bytes into plain text. The pipeline owns
// the file-type check; implementations only deal with bytes.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// PDFExtractor extracts the embedded text layer of a PDF. There is no OCR
// fallback: a scanned-image PDF yields an empty-extraction failure.
type PDFExtractor struct{}

func NewPDFExtractor() PDFExtractor { return PDFExtractor{} }

func (PDFExtractor) Extract(data []byte) (text string, err error) {
	// The pdf library panics on some corrupt files; a malformed upload must
	// surface as a reported error, not take the process down.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fault.Newf(fault.InvalidInput, "could not read PDF: %v", r)
		}
	}()

	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fault.Wrap(fault.InvalidInput, "could not read PDF", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fault.Wrap(fault.InvalidInput, "could not extract text from PDF", err)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", fault.Wrap(fault.InvalidInput, "could not extract text from PDF", err)
	}
	text = normalizeWhitespace(buf.String())
	if text == "" {
		return "", fault.New(fault.ExtractionEmpty, "could not extract text from PDF")
	}
	return text, nil
}

func normalizeWhitespace(s string) string {
	// Collapse excessive whitespace and trim
	re := regexp.MustCompile(`[ \t\r\f\v]+`)
	s = re.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00A0", " ")
	// Preserve newlines but collapse runs
	reN := regexp.MustCompile(`\n+`)
	s = reN.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
