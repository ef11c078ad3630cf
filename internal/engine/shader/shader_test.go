package shader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/flyview/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Nop()
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "v.glsl")
	frag := filepath.Join(dir, "f.glsl")
	writeFile(t, vert, "void main() { gl_Position = vec4(0); }")
	writeFile(t, frag, "out vec4 c; void main() { c = vec4(1); }")

	src, err := ReadSources(vert, frag)
	if err != nil {
		t.Fatalf("ReadSources: %v", err)
	}
	if src.Vertex != "void main() { gl_Position = vec4(0); }" {
		t.Errorf("vertex source = %q", src.Vertex)
	}
	if src.Fragment != "out vec4 c; void main() { c = vec4(1); }" {
		t.Errorf("fragment source = %q", src.Fragment)
	}
}

func TestReadSourcesMissing(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "v.glsl")
	writeFile(t, vert, "x")

	tests := []struct {
		name       string
		vert, frag string
	}{
		{"missing vertex", filepath.Join(dir, "nope.glsl"), vert},
		{"missing fragment", vert, filepath.Join(dir, "nope.glsl")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSources(tt.vert, tt.frag)
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected not-exist error, got %v", err)
			}
		})
	}
}

func TestLoadMissingFileFailsBeforeGL(t *testing.T) {
	// No GL context exists here; Load must fail on the read.
	_, err := Load("/nonexistent/v.glsl", "/nonexistent/f.glsl", "model")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "v.glsl")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, vert, "a")
	writeFile(t, other, "a")

	w, err := Watch(vert)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if w.Changed() {
		t.Fatal("no change expected before any write")
	}

	writeFile(t, other, "b")
	select {
	case <-w.C():
		t.Fatal("unwatched file triggered a change")
	case <-time.After(200 * time.Millisecond):
	}

	writeFile(t, vert, "b")
	writeFile(t, vert, "c")
	select {
	case <-w.C():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := Watch("/nonexistent/dir/v.glsl"); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
