package resume_test

import (
	"testing"

	"jobtion/pkg/fault"
	"jobtion/pkg/resume"
)

func TestPDFExtractor_MalformedInput(t *testing.T) {
	ext := resume.NewPDFExtractor()
	for _, data := range [][]byte{nil, []byte("plain text"), []byte("%PDF-1.4 truncated garbage")} {
		_, err := ext.Extract(data)
		if !fault.IsKind(err, fault.InvalidInput) {
			t.Errorf("Extract(%.20q): expected invalid_input, got %v", data, err)
		}
	}
}
