// Package view turns client state into markup. Nothing here performs I/O
// beyond writing to the supplied writer.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
)

//go:embed templates/*.go.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.go.html"))

const (
	authenticatedText   = "You are authenticated."
	unauthenticatedText = "You are not authenticated."

	ClassAuthenticated   = "green"
	ClassUnauthenticated = "red"

	// DefaultRenameAction is where owner-variant rename forms are posted.
	DefaultRenameAction = "/rename"
)

// AuthIndicator is the text and style class of the authentication banner.
type AuthIndicator struct {
	Text  string
	Class string
}

func Indicator(authed bool) AuthIndicator {
	if authed {
		return AuthIndicator{Text: authenticatedText, Class: ClassAuthenticated}
	}
	return AuthIndicator{Text: unauthenticatedText, Class: ClassUnauthenticated}
}

// GridOptions controls how a file listing is rendered.
type GridOptions struct {
	Variant models.Variant

	// BaseURL prefixes file and delete links. Empty keeps them relative.
	BaseURL string

	// RenameAction is the form target of the rename trigger. Defaults to
	// DefaultRenameAction.
	RenameAction string
}

// Tile is the view model of one file in the grid.
type Tile struct {
	ID          string
	Ext         string
	Label       string
	URL         string
	DeleteURL   string
	RenderedURL string
	CurrentName string
	Image       bool
}

// Tiles maps files to tiles, preserving order.
func Tiles(files []models.File, opts GridOptions) []Tile {
	tiles := make([]Tile, 0, len(files))
	for _, f := range files {
		t := Tile{
			ID:          f.ID,
			Ext:         f.Ext,
			Label:       f.Label(opts.Variant),
			URL:         models.JoinURL(opts.BaseURL, f.Path()),
			DeleteURL:   models.JoinURL(opts.BaseURL, f.DeletePath()),
			CurrentName: f.OriginalFilename,
			Image:       f.IsImage(),
		}
		if t.CurrentName == "" {
			t.CurrentName = f.Name()
		}
		if f.IsMarkdown() {
			t.RenderedURL = models.JoinURL(opts.BaseURL, f.RenderedPath())
		}
		tiles = append(tiles, t)
	}
	return tiles
}

type gridData struct {
	Tiles        []Tile
	CanRename    bool
	RenameAction string
}

// RenderGrid renders the file grid fragment. An empty listing yields an
// empty fragment.
func RenderGrid(files []models.File, opts GridOptions) (template.HTML, error) {
	data := gridData{
		Tiles:        Tiles(files, opts),
		CanRename:    opts.Variant.CanRename(),
		RenameAction: opts.RenameAction,
	}
	if data.RenameAction == "" {
		data.RenameAction = DefaultRenameAction
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "grid", data); err != nil {
		return "", fmt.Errorf("render grid: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Page is everything the dashboard page shows.
type Page struct {
	Token     string
	Indicator AuthIndicator
	Grid      template.HTML

	// Flash is a one-off message, the equivalent of an alert.
	Flash string
}

func RenderPage(w io.Writer, p Page) error {
	return templates.ExecuteTemplate(w, "page", p)
}
