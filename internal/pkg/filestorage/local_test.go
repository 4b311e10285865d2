package filestorage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yigit/cems/internal/pkg/apperrors"
)

// fileHeader builds a real multipart header the way net/http would
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestSaveAndDeleteImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:5000/uploads/")
	if err != nil {
		t.Fatal(err)
	}

	url, err := store.SaveImage(fileHeader(t, "Poster.PNG", []byte("png-bytes")), "events")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:5000/uploads/events/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	stored := filepath.Join(dir, "events", filepath.Base(url))
	got, err := os.ReadFile(stored)
	if err != nil || string(got) != "png-bytes" {
		t.Fatalf("stored content = %q, %v", got, err)
	}

	if err := store.DeleteImage(url); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if err := store.DeleteImage(url); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.SaveImage(fileHeader(t, "script.sh", []byte("#!/bin/sh")), "events")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want validation error", err)
	}

	_, err = store.SaveImage(fileHeader(t, "empty.png", nil), "events")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("empty upload err = %v", err)
	}
}

func TestDeleteImageIgnoresForeignURLs(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "keep.png")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewLocalStorage(dir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	for _, url := range []string{
		"https://images.unsplash.com/photo.png",
		"/uploads/../../" + filepath.Base(outside),
		"/uploads/",
	} {
		if err := store.DeleteImage(url); err != nil {
			t.Fatalf("DeleteImage(%q): %v", url, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the store was touched: %v", err)
	}
}
