// Package document splits front matter metadata from document text.
package document

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is a source document with its front matter block removed.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// Split separates a leading --- delimited YAML block from the document
// body. Documents without a front matter block are returned unchanged with
// an empty metadata map.
func Split(raw string) (Document, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return Document{Frontmatter: map[string]any{}, Body: raw}, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return Document{}, errors.New("front matter: missing closing ---")
	}

	yml := strings.Join(lines[1:end], "\n")
	var meta map[string]any
	dec := yaml.NewDecoder(bytes.NewBufferString(yml))
	dec.KnownFields(false)
	if err := dec.Decode(&meta); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	if meta == nil {
		meta = map[string]any{}
	}

	body := strings.Join(lines[end+1:], "\n")
	body = strings.TrimPrefix(body, "\n")
	return Document{Frontmatter: meta, Body: body}, nil
}

// Merge reassembles a document from metadata and body. Splitting the result
// yields the same metadata and body; only the exact delimiter formatting of
// the original is not preserved.
func Merge(meta map[string]any, body string) (string, error) {
	if len(meta) == 0 {
		return body, nil
	}
	yml, err := yaml.Marshal(meta)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.Write(yml)
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String(), nil
}
