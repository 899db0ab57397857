// Package article loads markdown articles and renders them with the reader's
// presentation settings applied.
package article

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

//go:embed sample.md
var sample []byte

// Meta is the optional front matter block of an article.
type Meta struct {
	Title  string `yaml:"title" toml:"title" json:"title"`
	Author string `yaml:"author" toml:"author" json:"author"`
	Date   string `yaml:"date" toml:"date" json:"date"`
}

// Document is a parsed article.
type Document struct {
	Meta Meta
	Body string
	// Path is empty for the bundled sample.
	Path string
}

// Title returns the front matter title, falling back to the first heading
// and then the file name.
func (d Document) Title() string {
	if d.Meta.Title != "" {
		return d.Meta.Title
	}
	for _, line := range strings.Split(d.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	if d.Path != "" {
		return filepath.Base(d.Path)
	}
	return "Untitled"
}

// Parse splits raw markdown into front matter and body.
func Parse(data []byte) (Document, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("parse front matter: %w", err)
	}
	return Document{Meta: meta, Body: string(body)}, nil
}

// Load reads and parses the article at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Sample returns the bundled article shown when no file is given.
func Sample() Document {
	doc, err := Parse(sample)
	if err != nil {
		panic("article: bundled sample is malformed: " + err.Error())
	}
	return doc
}
