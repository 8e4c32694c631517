// Package export renders every category's row names as a JavaScript module
// of the form "export default [...];".
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/marcus/notas/internal/document"
)

// ErrNothingToExport is returned when no category has a named row.
var ErrNothingToExport = errors.New("nothing to export")

// Defaults for the exported file name.
const (
	DefaultPrefix    = "notas"
	DefaultExtension = "js"
)

// Source is one category's rows.
type Source struct {
	Slug string
	Rows []document.Row
}

// Page is one exported category: its 1-based position among exported pages
// and its non-empty row names.
type Page struct {
	Number int
	Names  []string
}

// MarshalJSON encodes the page as {"page":"n","fila 1":...,"fila 2":...}
// with keys in that order.
func (p Page) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writePair(&buf, "page", strconv.Itoa(p.Number))
	for i, name := range p.Names {
		buf.WriteByte(',')
		writePair(&buf, "fila "+strconv.Itoa(i+1), name)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writePair(buf *bytes.Buffer, key, value string) {
	buf.WriteString(quote(key))
	buf.WriteByte(':')
	buf.WriteString(quote(value))
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// RowSource reads stored categories.
type RowSource interface {
	Categories() []string
	LoadCategory(slug string) []document.Row
}

// Collect returns home followed by every indexed category. The category
// named open uses openRows instead of its stored rows, so unsaved edits are
// exported too.
func Collect(src RowSource, open string, openRows []document.Row) []Source {
	slugs := append([]string{""}, src.Categories()...)
	out := make([]Source, 0, len(slugs))
	for _, s := range slugs {
		rows := openRows
		if s != open {
			rows = src.LoadCategory(s)
		}
		out = append(out, Source{Slug: s, Rows: rows})
	}
	return out
}

// Build turns sources into pages. Names are trimmed, blank names are
// skipped, and sources without any name produce no page.
func Build(sources []Source) []Page {
	var pages []Page
	for _, src := range sources {
		var names []string
		for _, r := range src.Rows {
			if name := strings.TrimSpace(r.Name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}
		pages = append(pages, Page{Number: len(pages) + 1, Names: names})
	}
	return pages
}

// Render returns the module body for pages.
func Render(pages []Page) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNothingToExport
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pages); err != nil {
		return nil, fmt.Errorf("encode pages: %w", err)
	}
	body := bytes.TrimRight(buf.Bytes(), "\n")

	out := make([]byte, 0, len(body)+32)
	out = append(out, "export default "...)
	out = append(out, body...)
	out = append(out, ";\n"...)
	return out, nil
}

// FileName returns "<prefix>-<unix ms>.<ext>".
func FileName(prefix, ext string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "." + ext
}

// Write stores body in dir under FileName and returns the full path.
func Write(dir, prefix, ext string, now time.Time, body []byte) (string, error) {
	if len(body) == 0 {
		return "", ErrNothingToExport
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(prefix, ext, now))
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Highlight colors body as JavaScript for a 256-color terminal.
func Highlight(body []byte, style string) (string, error) {
	if style == "" {
		style = "monokai"
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(body), "javascript", "terminal256", style); err != nil {
		return "", fmt.Errorf("highlight: %w", err)
	}
	return buf.String(), nil
}
