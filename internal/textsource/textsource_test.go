package textsource

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  Jane  Doe\t\r\n\n\nPython ,  SQL  \n")
	assert.Equal(t, "Jane Doe \nPython , SQL", got)
}

func TestLoadPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jane.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\n\n\nEmail: jane@example.com\n"), 0o600))

	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEmail: jane@example.com", text)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("blank.txt", []byte(" \n\t "))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := Parse("jane.DOCX", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go", text)
}

func TestParseDocxWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Parse("cv.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestParseInvalidPDF(t *testing.T) {
	_, err := Parse("cv.pdf", []byte("definitely not a pdf"))
	assert.Error(t, err)
}
