// Package preview reads files for display next to the tree.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSize is the largest file that will be previewed.
const MaxSize = 5 * 1024 * 1024

// sniffSize is how much of a file is inspected for binary content.
const sniffSize = 8192

// Preview is the displayable content of a file. When Message is set the
// file could not be shown and Content is empty.
type Preview struct {
	Path     string
	Language string
	Content  string
	Message  string
	Size     int64
}

// ErrOutsideRoot is returned for paths that escape the root directory.
var ErrOutsideRoot = errors.New("path is outside the root directory")

// Read loads rel, a slash-separated path below root. Oversized and binary
// files yield a Preview with Message set rather than an error.
func Read(root, rel string) (Preview, error) {
	path, err := resolve(root, rel)
	if err != nil {
		return Preview{}, err
	}

	p := Preview{Path: rel, Language: Language(rel)}

	info, err := os.Stat(path)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to stat file %s: %w", rel, err)
	}
	if info.IsDir() {
		return Preview{}, fmt.Errorf("%s is a directory", rel)
	}
	p.Size = info.Size()

	if p.Size > MaxSize {
		p.Message = fmt.Sprintf("File is too large to preview (%.2f MB). The limit is %d MB.",
			float64(p.Size)/1024/1024, MaxSize/1024/1024)
		return p, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to read file %s: %w", rel, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return Preview{}, fmt.Errorf("failed to read file %s: %w", rel, err)
	}

	if IsBinary(content) {
		p.Message = fmt.Sprintf("Binary file cannot be previewed: %s", filepath.Base(rel))
		return p, nil
	}

	p.Content = string(content)
	return p, nil
}

func resolve(root, rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", rel, ErrOutsideRoot)
	}
	return filepath.Join(root, clean), nil
}

// IsBinary reports whether content looks binary: a NUL byte in the first
// 8 KB, or more than 10% non-printable runes among the first 100.
func IsBinary(content []byte) bool {
	head := content
	if len(head) > sniffSize {
		head = head[:sniffSize]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}

	const sampleSize = 100
	var nonPrintable int
	var totalRunes int

	for i := 0; i < len(head) && totalRunes < sampleSize; {
		r, size := utf8.DecodeRune(head[i:])
		if r == utf8.RuneError {
			nonPrintable++
		} else if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
		}
		i += size
		totalRunes++
	}

	if totalRunes == 0 {
		return false
	}
	return float64(nonPrintable)/float64(totalRunes) > 0.1
}
