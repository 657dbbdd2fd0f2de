package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spak-project/spak/internal/effect"
)

func TestFilesystemWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "note.txt")
	fs := NewFilesystem()

	if _, err := fs.Handle(context.Background(), effect.Effect{Kind: effect.WriteFile, Payload: effect.FileWrite{Path: path, Content: "hello"}}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := fs.Handle(context.Background(), effect.Effect{Kind: effect.ReadFile, Payload: effect.FileRead{Path: path}})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if out != "hello" {
		t.Fatalf("expected %q, got %q", "hello", out)
	}
}

func TestFilesystemReadMissingFileErrors(t *testing.T) {
	fs := NewFilesystem()
	_, err := fs.Handle(context.Background(), effect.Effect{Kind: effect.ReadFile, Payload: effect.FileRead{Path: filepath.Join(t.TempDir(), "absent.txt")}})
	if err == nil {
		t.Fatal("expected error reading a missing file")
	}
}

func TestFilesystemCanHandle(t *testing.T) {
	fs := NewFilesystem()
	if !fs.CanHandle(effect.ReadFile) || !fs.CanHandle(effect.WriteFile) {
		t.Fatal("expected ReadFile and WriteFile to be handled")
	}
	if fs.CanHandle(effect.Math) {
		t.Fatal("expected Math to be declined")
	}
}
