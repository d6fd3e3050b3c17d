package filestore

import (
	"bytes"
	"context"
	"testing"

	"mattrack/internal/ports"
)

func stores(t *testing.T) map[string]ports.FileStore {
	t.Helper()
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem() error = %v", err)
	}
	return map[string]ports.FileStore{
		"filesystem": fs,
		"memory":     NewMemory(),
	}
}

func TestSaveAndOpen(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			payload := []byte("drawing bytes")

			if err := store.Save(ctx, "MAT-00000001_v1.pdf", payload); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Open(ctx, "MAT-00000001_v1.pdf")
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("Open() = %q", got)
			}
		})
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Save(ctx, "a_v1.pdf", []byte("one")); err != nil {
				t.Fatalf("first Save() error = %v", err)
			}
			if err := store.Save(ctx, "a_v1.pdf", []byte("two")); err == nil {
				t.Fatalf("second Save() with same name succeeded")
			}
			got, err := store.Open(ctx, "a_v1.pdf")
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if string(got) != "one" {
				t.Fatalf("payload overwritten: %q", got)
			}
		})
	}
}

func TestOpenMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Open(context.Background(), "missing_v1.pdf"); err == nil {
				t.Fatalf("Open(missing) succeeded")
			}
		})
	}
}

func TestFilesystemRejectsUnsafeNames(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem() error = %v", err)
	}
	ctx := context.Background()
	for _, name := range []string{"", "  ", "../escape", "a/b", `a\b`} {
		if err := fs.Save(ctx, name, []byte("x")); err == nil {
			t.Fatalf("Save(%q) succeeded", name)
		}
	}
}
