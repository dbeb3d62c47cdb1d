package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khanglvm/edu-ai/internal/upload"
)

func writeFile(t *testing.T, dir, name string, size int64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewUploadCmd(t *testing.T) {
	cmd := NewUploadCmd(newTestApp(t))

	if cmd.Use != "upload <file>..." {
		t.Errorf("Expected Use='upload <file>...', got %q", cmd.Use)
	}
	for _, flag := range []string{"max-files", "max-size", "accept", "json"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Flag %q not registered", flag)
		}
	}
}

func TestUploadAcceptsValidFiles(t *testing.T) {
	dir := t.TempDir()
	pdf := writeFile(t, dir, "paper.pdf", 2048)
	png := writeFile(t, dir, "scan.png", 100)

	out, err := run(t, NewUploadCmd(newTestApp(t)), "--json", pdf, png)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	var files []upload.FileMetadata
	if err := json.Unmarshal([]byte(out), &files); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0].Name != "paper.pdf" || files[0].Type != "application/pdf" || files[0].Preview != "" {
		t.Errorf("Unexpected pdf metadata: %+v", files[0])
	}
	if files[1].Type != "image/png" || !strings.HasPrefix(files[1].Preview, "blob:") {
		t.Errorf("Expected image preview handle, got %+v", files[1])
	}
}

func TestUploadSkipsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.pdf", 1024)
	big := writeFile(t, dir, "big.pdf", 6*1024*1024)

	out, err := run(t, NewUploadCmd(newTestApp(t)), small, big)
	if err != nil {
		t.Fatalf("Expected partial success, got %v", err)
	}
	if !strings.Contains(out, "small.pdf") {
		t.Errorf("Expected small.pdf accepted, got %q", out)
	}
	if !strings.Contains(out, "File size must be less than 5MB") {
		t.Errorf("Expected size warning, got %q", out)
	}
}

func TestUploadFailsWhenNothingAccepted(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", 10)

	_, err := run(t, NewUploadCmd(newTestApp(t)), "--accept", "application/pdf", txt)
	if err == nil || !strings.Contains(err.Error(), "File type not supported") {
		t.Errorf("Expected unsupported type error, got %v", err)
	}
}

func TestUploadRejectsBatchOverLimit(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		paths = append(paths, writeFile(t, dir, name, 10))
	}

	args := append([]string{"--max-files", "2"}, paths...)
	_, err := run(t, NewUploadCmd(newTestApp(t)), args...)
	if err == nil || !strings.Contains(err.Error(), "Maximum 2 files allowed") {
		t.Errorf("Expected max files error, got %v", err)
	}
}

func TestUploadMissingFile(t *testing.T) {
	_, err := run(t, NewUploadCmd(newTestApp(t)), filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDetectTypeSniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.unknownext")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatal(err)
	}

	typ, err := detectType(path)
	if err != nil {
		t.Fatalf("detectType failed: %v", err)
	}
	if typ != "image/png" {
		t.Errorf("Expected image/png, got %q", typ)
	}
}
