package resume

import (
	"strings"
	"testing"

	"hiremate/internal/errors"
)

func TestExtractPlainText(t *testing.T) {
	text, err := Extract("resume.txt", []byte("  Five years of Go experience.\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "Five years of Go experience." {
		t.Errorf("Expected trimmed text, got %q", text)
	}
}

func TestExtractRejectsEmptyFile(t *testing.T) {
	_, err := Extract("resume.txt", nil)
	if err == nil {
		t.Fatal("Empty file should be rejected")
	}
	if errors.TypeOf(err) != errors.ErrorTypeValidation {
		t.Errorf("Expected validation error, got type %q", errors.TypeOf(err))
	}
}

func TestExtractRejectsUnsupportedFormat(t *testing.T) {
	_, err := Extract("resume.odt", []byte("content"))
	if err == nil {
		t.Fatal("Unsupported format should be rejected")
	}
	if errors.TypeOf(err) != errors.ErrorTypeFormat {
		t.Errorf("Expected format error, got type %q", errors.TypeOf(err))
	}
	if !strings.Contains(err.Error(), ".odt") {
		t.Errorf("Error should name the rejected extension, got %q", err.Error())
	}
}

func TestExtractRejectsBlankText(t *testing.T) {
	_, err := Extract("resume.txt", []byte("   \n\t  "))
	if err == nil {
		t.Fatal("Whitespace-only file should be rejected")
	}
}

func TestExtractRejectsInvalidUTF8(t *testing.T) {
	_, err := Extract("resume.txt", []byte{0xff, 0xfe, 0x00})
	if err == nil {
		t.Fatal("Non-UTF-8 file should be rejected")
	}
}

func TestExtractRejectsCorruptPDF(t *testing.T) {
	_, err := Extract("resume.pdf", []byte("this is not a pdf"))
	if err == nil {
		t.Fatal("Corrupt PDF should be rejected")
	}
	if errors.TypeOf(err) != errors.ErrorTypeFormat {
		t.Errorf("Expected format error, got type %q", errors.TypeOf(err))
	}
}

func TestStripXMLTags(t *testing.T) {
	content := `<w:document><w:p><w:r><w:t>First line</w:t></w:r></w:p><w:p><w:r><w:t>Second line</w:t></w:r></w:p></w:document>`
	got := stripXMLTags(content)
	if !strings.Contains(got, "First line\n") {
		t.Errorf("Paragraph breaks should become newlines, got %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("All markup should be stripped, got %q", got)
	}
}
