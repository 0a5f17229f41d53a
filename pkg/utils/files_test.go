package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var rom = []byte{0x00, 0xC3, 0x50, 0x01, 0xFF}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(rom)
	w.Close()

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	f, _ := zw.Create("game.gb")
	f.Write(rom)
	zw.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"game.gb", rom},
		{"dmg_boot.bin", rom},
		{"game.gb.gz", gz.Bytes()},
		{"game.zip", zipped.Bytes()},
		{"GAME.ZIP", zipped.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(writeFile(t, tt.name, tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, rom) {
				t.Errorf("expected %v, got %v", rom, got)
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	var empty bytes.Buffer
	zip.NewWriter(&empty).Close()
	if _, err := LoadFile(writeFile(t, "empty.zip", empty.Bytes())); !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("expected ErrEmptyArchive, got %v", err)
	}

	if _, err := LoadFile(writeFile(t, "broken.7z", []byte("not an archive"))); err == nil {
		t.Error("expected an error for a corrupt 7z archive")
	}
}
