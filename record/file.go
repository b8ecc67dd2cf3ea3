package record

import (
	"os"
	"path/filepath"
	"strings"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes tl to path, as YAML for .yaml/.yml and as text otherwise.
func Save(path string, tl *Timeline) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if isYAML(path) {
		return EncodeYAML(f, tl)
	}
	return EncodeText(f, tl)
}

// Load reads a record written by Save.
func Load(path string) (*Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isYAML(path) {
		return DecodeYAML(f)
	}
	return DecodeText(f)
}
