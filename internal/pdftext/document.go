// Package pdftext exposes PDF pages as text plus extracted tables.
package pdftext

import (
	"context"
)

// Table is a sequence of rows, each a sequence of cell strings.
type Table [][]string

// Page is one PDF page.
type Page interface {
	// Text returns the page text; ok is false when the page has none.
	Text() (text string, ok bool)
	// Tables returns the tables found on the page, in reading order.
	Tables() []Table
}

// Document is an opened PDF.
type Document interface {
	Pages() []Page
	Close() error
}

// Opener opens a PDF file for extraction.
type Opener interface {
	Open(ctx context.Context, path string) (Document, error)
}

// TextSource produces whole-document text from a file, used when the page
// content streams yield no text.
type TextSource interface {
	DocumentText(ctx context.Context, path string) (string, error)
}

// StaticPage is a Page with precomputed content.
type StaticPage struct {
	Content string
	Grids   []Table
}

func (p StaticPage) Text() (string, bool) { return p.Content, p.Content != "" }
func (p StaticPage) Tables() []Table      { return p.Grids }

// StaticDocument is a Document with precomputed pages.
type StaticDocument []Page

func (d StaticDocument) Pages() []Page { return d }
func (d StaticDocument) Close() error  { return nil }
