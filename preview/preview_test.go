package preview

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logo.png"), []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0644))

	big, err := os.Create(filepath.Join(root, "big.txt"))
	require.NoError(t, err)
	require.NoError(t, big.Truncate(MaxSize+1))
	require.NoError(t, big.Close())

	t.Run("text", func(t *testing.T) {
		assert := assert.New(t)

		p, err := Read(root, "src/main.go")
		assert.NoError(err)
		assert.Equal("package main\n", p.Content)
		assert.Equal("go", p.Language)
		assert.Empty(p.Message)
	})

	t.Run("binary", func(t *testing.T) {
		assert := assert.New(t)

		p, err := Read(root, "logo.png")
		assert.NoError(err)
		assert.Empty(p.Content)
		assert.Contains(p.Message, "Binary file")
	})

	t.Run("too large", func(t *testing.T) {
		assert := assert.New(t)

		p, err := Read(root, "big.txt")
		assert.NoError(err)
		assert.Empty(p.Content)
		assert.Contains(p.Message, "too large")
		assert.Equal(int64(MaxSize+1), p.Size)
	})

	t.Run("outside root", func(t *testing.T) {
		_, err := Read(root, "../etc/passwd")
		assert.True(t, errors.Is(err, ErrOutsideRoot))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Read(root, "nope.txt")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Read(root, "src")
		assert.Error(t, err)
	})
}

func TestIsBinary(t *testing.T) {
	assert := assert.New(t)

	assert.False(IsBinary(nil))
	assert.False(IsBinary([]byte("hello\nworld\t日本語")))
	assert.True(IsBinary([]byte("abc\x00def")))
	assert.True(IsBinary(bytes.Repeat([]byte{0x01, 0x02, 'a'}, 50)))

	// NUL beyond the sniffed prefix is not looked at
	late := append(bytes.Repeat([]byte("a"), sniffSize), 0)
	assert.False(IsBinary(late))
}

func TestLanguage(t *testing.T) {
	cases := map[string]string{
		"src/a.ts":       "typescript",
		"main.GO":        "go",
		"Dockerfile":     "dockerfile",
		`dir\Makefile`:   "makefile",
		"notes":          "plaintext",
		"config.yml":     "yaml",
		"web/index.html": "html",
		"scripts/run.sh": "bash",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, Language(name))
		})
	}
}
