package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]bool{
	".mp3": true, ".m4a": true, ".aac": true, ".wav": true,
	".ogg": true, ".opus": true, ".flac": true, ".m4b": true,
}

func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListAudioFiles returns audio files under basePath, relative to it, skipping
// hidden entries.
func ListAudioFiles(basePath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() && path != basePath {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsAudioFile(d.Name()) {
			if rel, err := filepath.Rel(basePath, path); err == nil {
				files = append(files, rel)
			}
		}
		return nil
	})
	return files, err
}

const maxSanitizedLen = 128

// SanitizeID turns an episode guid into a filesystem-safe artifact name:
// ASCII alphanumerics, '-' and '_' only, truncated to 128 characters.
func SanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
		if b.Len() >= maxSanitizedLen {
			break
		}
	}
	return b.String()
}

// WriteFileAtomic writes data via a temp file and rename so a reader never
// observes a partially written artifact.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
