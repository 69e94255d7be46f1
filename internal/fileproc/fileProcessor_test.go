package fileproc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tbellam/AssistGo/internal/domain/chatModel"
)

func writeTemp(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestProcess_TextDocument(t *testing.T) {
	path := writeTemp(t, "notes.txt", "meeting at noon")

	fc, err := Process(path, "notes.txt")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if fc.MimeClass != chatModel.MimeDocument || fc.MimeSubtype != "txt" {
		t.Errorf("classification got %s/%s, want document/txt", fc.MimeClass, fc.MimeSubtype)
	}
	if fc.ExtractedText != "meeting at noon" {
		t.Errorf("ExtractedText got %q", fc.ExtractedText)
	}
	if fc.SizeBytes != int64(len("meeting at noon")) {
		t.Errorf("SizeBytes got %d", fc.SizeBytes)
	}
	if fc.Id == "" {
		t.Error("missing file id")
	}
}

func TestProcess_Markdown(t *testing.T) {
	path := writeTemp(t, "readme.md", "# Title\nbody")

	fc, err := Process(path, "readme.md")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if fc.ExtractedText != "# Title\nbody" {
		t.Errorf("ExtractedText got %q", fc.ExtractedText)
	}
}

func TestProcess_ImageHasNoText(t *testing.T) {
	path := writeTemp(t, "photo.png", "not really a png")

	fc, err := Process(path, "photo.png")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if fc.MimeClass != chatModel.MimeImage {
		t.Errorf("MimeClass got %s, want image", fc.MimeClass)
	}
	if fc.ExtractedText != "" {
		t.Errorf("image produced extracted text: %q", fc.ExtractedText)
	}
}

func TestProcess_UnknownExtension(t *testing.T) {
	path := writeTemp(t, "data.xyz", "binary blob")

	fc, err := Process(path, "data.xyz")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if fc.MimeClass != chatModel.MimeUnknown {
		t.Errorf("MimeClass got %s, want unknown", fc.MimeClass)
	}
	if fc.ExtractedText != "" {
		t.Error("unknown file produced extracted text")
	}
}

func TestProcess_MissingFile(t *testing.T) {
	if _, err := Process("/does/not/exist.txt", "exist.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProcess_CorruptDocumentStillAttaches(t *testing.T) {
	path := writeTemp(t, "broken.pdf", "this is not a pdf")

	fc, err := Process(path, "broken.pdf")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if fc.MimeClass != chatModel.MimeDocument {
		t.Errorf("MimeClass got %s, want document", fc.MimeClass)
	}
	if fc.ExtractedText != "" {
		t.Errorf("corrupt pdf produced text: %q", fc.ExtractedText)
	}
}
