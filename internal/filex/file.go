// Package filex inspects local files before they are handed to an uploader.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileInfo describes a local file selected for upload.
type FileInfo struct {
	Path string
	Name string
	Size int64
	// MIME is the content type detected from the file's leading bytes,
	// without parameters (e.g. "application/pdf").
	MIME string
}

// Inspect stats path and sniffs its content type.
func Inspect(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	return FileInfo{
		Path: path,
		Name: filepath.Base(path),
		Size: st.Size(),
		MIME: baseMIME(mt.String()),
	}, nil
}

// IsPDF reports whether the sniffed type is a PDF document.
func (f FileInfo) IsPDF() bool {
	return mimetype.EqualsAny(f.MIME, "application/pdf")
}

// baseMIME drops parameters such as "; charset=utf-8".
func baseMIME(s string) string {
	base, _, _ := strings.Cut(s, ";")
	return strings.TrimSpace(base)
}
