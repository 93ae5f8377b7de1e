package storage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain guid", "episode-42_final", "episode-42_final"},
		{"url guid", "https://feeds.example.com/ep?id=42", "httpsfeedsexamplecomepid42"},
		{"spaces and unicode", "épisode un — deux", "pisodeundeux"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeID(tc.in); got != tc.want {
				t.Errorf("SanitizeID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeIDTruncates(t *testing.T) {
	long := strings.Repeat("a", 500)
	if got := SanitizeID(long); len(got) != 128 {
		t.Errorf("len = %d, want 128", len(got))
	}
}

func TestIsAudioFile(t *testing.T) {
	for _, name := range []string{"a.mp3", "b.M4A", "c.flac", "d.opus"} {
		if !IsAudioFile(name) {
			t.Errorf("IsAudioFile(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"a.txt", "b.json", "noext"} {
		if IsAudioFile(name) {
			t.Errorf("IsAudioFile(%q) = true, want false", name)
		}
	}
}

func TestListAudioFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("show/ep1.mp3")
	mustWrite("show/ep2.m4a")
	mustWrite("show/notes.txt")
	mustWrite(".hidden/secret.mp3")
	mustWrite(".DS_Store")

	files, err := ListAudioFiles(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sort.Strings(files)

	want := []string{filepath.Join("show", "ep1.mp3"), filepath.Join("show", "ep2.m4a")}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "artifact.json")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
