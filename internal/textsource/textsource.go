// Package textsource turns résumé and job description files into plain text.
package textsource

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrEmpty is returned when a file yields no text at all.
var ErrEmpty = errors.New("no text extracted")

var (
	blanksRe    = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlinesRe  = regexp.MustCompile(`\n+`)
	xmlTagsRe   = regexp.MustCompile(`<[^>]+>`)
	docxBodyXML = "word/document.xml"
)

// Load reads path and returns its normalized text. PDF and DOCX are
// decoded by extension. Anything else is read as UTF-8 text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text, err := Parse(filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return text, nil
}

// Parse extracts text from data using filename to pick the format.
func Parse(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = fromPDF(data)
	case ".docx":
		text, err = fromDocx(data)
	default:
		text = string(data)
	}
	if err != nil {
		return "", err
	}

	text = Normalize(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// Normalize collapses horizontal whitespace and blank lines while keeping
// line breaks.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = blanksRe.ReplaceAllString(s, " ")
	s = newlinesRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

func fromPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed streams
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdf decode: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func fromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != docxBodyXML {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", docxBodyXML, err)
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", docxBodyXML, err)
		}

		xml := strings.ReplaceAll(string(body), "</w:p>", "\n")
		xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
		return xmlTagsRe.ReplaceAllString(xml, ""), nil
	}

	return "", fmt.Errorf("docx has no %s", docxBodyXML)
}
