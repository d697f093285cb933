package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// verifyPDF parses the generated PDF and checks the subject's name made it
// into the text layer. Chrome occasionally emits an empty document when the
// page fails to load; this catches that before the artifact is stored.
func verifyPDF(data []byte, subjectName string) error {
	if len(data) == 0 {
		return fmt.Errorf("pdf verify: empty document")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("pdf verify: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return fmt.Errorf("pdf verify: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return fmt.Errorf("pdf verify: %w", err)
	}
	name := strings.TrimSpace(subjectName)
	if name == "" {
		return nil
	}
	// Text extraction can drop spacing, so compare without whitespace.
	squash := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}
	if !strings.Contains(squash(buf.String()), squash(name)) {
		return fmt.Errorf("pdf verify: subject name missing from rendered text")
	}
	return nil
}
