package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}
}

func TestUnzip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "export.zip")
	writeZip(t, zipPath, map[string]string{
		"apple_health_export/export.xml": "<HealthData/>",
		"apple_health_export/export_cda.xml": "<ClinicalDocument/>",
	})

	dest := filepath.Join(dir, "raw")
	if err := Unzip(zipPath, dest); err != nil {
		t.Fatalf("unzip: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dest, "apple_health_export", "export.xml"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(b) != "<HealthData/>" {
		t.Fatalf("unexpected content: %q", b)
	}
}

func TestUnzipRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"../evil.txt": "nope",
	})

	dest := filepath.Join(dir, "raw")
	err := Unzip(zipPath, dest)
	if err == nil || !strings.Contains(err.Error(), "escapes") {
		t.Fatalf("expected escape rejection, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(statErr) {
		t.Fatal("escaping entry must not be written")
	}
}

func TestUnzipMissingArchive(t *testing.T) {
	dir := t.TempDir()
	if err := Unzip(filepath.Join(dir, "nope.zip"), filepath.Join(dir, "raw")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}
