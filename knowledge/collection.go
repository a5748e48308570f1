// Package knowledge loads the line-oriented knowledge base: every non-blank
// line of the source text is one document, and its order defines the
// document position.
package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/kbvec/internal/location"
)

// DefaultSource is the conventional knowledge base file name.
const DefaultSource = "knowledge_base.txt"

// Document is one knowledge base line.
type Document struct {
	Position int
	Text     string
}

// Collection is the immutable, ordered document set.
type Collection struct {
	Source    string
	Missing   bool
	Documents []Document
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Documents)
}

// Empty reports whether the collection has no documents.
func (c *Collection) Empty() bool { return c.Len() == 0 }

// Texts returns the document texts in position order.
func (c *Collection) Texts() []string {
	if c == nil {
		return nil
	}
	out := make([]string, c.Len())
	for i, doc := range c.Documents {
		out[i] = doc.Text
	}
	return out
}

// Parse splits text on newlines, trims each line and drops blank ones.
// Positions are assigned densely from 0 in the order lines appear.
func Parse(text string) []Document {
	var docs []Document
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		docs = append(docs, Document{Position: len(docs), Text: line})
	}
	return docs
}

// Load reads the knowledge base at URL, a local path or any afs URL. A
// source that does not exist is not an error: the returned collection is
// empty and marked Missing. Any other failure, including one while checking
// existence, is returned.
func Load(ctx context.Context, fs afs.Service, URL string) (*Collection, error) {
	if fs == nil {
		fs = afs.New()
	}
	if URL == "" {
		URL = DefaultSource
	}
	URL = location.URL(URL)
	ret := &Collection{Source: URL}
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("knowledge: stat %v: %w", URL, err)
	}
	if !exists {
		ret.Missing = true
		return ret, nil
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %v: %w", URL, err)
	}
	ret.Documents = Parse(string(data))
	return ret, nil
}
