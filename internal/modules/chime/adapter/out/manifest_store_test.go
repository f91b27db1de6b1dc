package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	chimeout "zazen/internal/modules/chime/adapter/out"
)

func TestManifestStoreReturnsEmptyWhenFileMissing(t *testing.T) {
	t.Parallel()

	store := chimeout.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d", len(manifests))
	}
}

func TestManifestStoreResolvesRelativeBinaryPaths(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	raw := `[{"name":"bowl","version":"1.0.0","binary":"bin/bowl","sha256":"` +
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" + `","enabled":true}]`
	if err := os.WriteFile(filepath.Join(tmp, "chimes.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write chimes.json: %v", err)
	}

	store := chimeout.NewFileManifestStore(tmp)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	want := filepath.Join(tmp, "bin", "bowl")
	if manifests[0].Binary != want {
		t.Fatalf("binary = %q, want %q", manifests[0].Binary, want)
	}
}

func TestManifestStoreRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	raw := `[{"name":"bowl","surprise":true}]`
	if err := os.WriteFile(filepath.Join(tmp, "chimes.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write chimes.json: %v", err)
	}

	store := chimeout.NewFileManifestStore(tmp)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected decode error for unknown fields")
	}
}
