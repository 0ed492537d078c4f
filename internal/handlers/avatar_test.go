package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAvatarFilenameUsesTimestampAndExtension(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	name, err := avatarFilename("photo.PNG", now)
	if err != nil {
		t.Fatalf("avatarFilename returned error: %v", err)
	}
	if name != "avatar_1700000000000.png" {
		t.Fatalf("unexpected filename: %q", name)
	}
}

func TestAvatarFilenameRejectsUnsupportedExtension(t *testing.T) {
	for _, original := range []string{"script.exe", "noext", "archive.tar.gz"} {
		if _, err := avatarFilename(original, time.Now()); err == nil {
			t.Fatalf("expected error for %q", original)
		}
	}
}

func TestSafeDeleteUploadRemovesFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "avatar_1.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload(dir, "/uploads/avatar_1.png"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUploadIgnoresMissingFile(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "/uploads/avatar_gone.png"); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestSafeDeleteUploadRefusesOutsidePaths(t *testing.T) {
	dir := t.TempDir()

	refused := []string{
		"/etc/passwd",
		"/uploads/../secrets.txt",
		"uploads/../../escape.png",
	}
	for _, p := range refused {
		if err := safeDeleteUpload(dir, p); err == nil || !strings.Contains(err.Error(), "refusing") {
			t.Fatalf("expected refusal for %q, got %v", p, err)
		}
	}
}

func TestSafeDeleteUploadEmptyPathIsNoop(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), ""); err != nil {
		t.Fatalf("expected empty path to be a no-op, got %v", err)
	}
}
