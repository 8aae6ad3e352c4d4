// Package models defines the client-side view of files hosted on an sx server.
package models

import (
	"net/url"
	"strings"
)

// File is one record of the /files listing.
type File struct {
	ID string `json:"id"`

	// Ext includes the leading dot, e.g. ".png".
	Ext string `json:"ext"`

	// OriginalFilename is only served to the owner view.
	OriginalFilename string `json:"original_filename,omitempty"`

	// DeleteToken authorises deletion of this file without the API key.
	DeleteToken string `json:"delete_token"`
}

// Name is the file's id with extension, the name it is served under.
func (f File) Name() string {
	return f.ID + f.Ext
}

// Path is the public retrieval path, /f/<id><ext>. The rename endpoint
// lives at the same path.
func (f File) Path() string {
	return "/f/" + url.PathEscape(f.Name())
}

// RenderedPath is where the server serves markdown files rendered as HTML.
func (f File) RenderedPath() string {
	return "/f/" + url.PathEscape(f.ID) + ".html"
}

// DeletePath is the capability link that deletes the file, /del?f=<id>&t=<token>.
func (f File) DeletePath() string {
	q := url.Values{}
	q.Set("f", f.ID)
	q.Set("t", f.DeleteToken)
	return "/del?" + q.Encode()
}

func (f File) IsImage() bool {
	switch f.Ext {
	case ".png", ".jpg":
		return true
	}
	return false
}

func (f File) IsMarkdown() bool {
	switch strings.ToLower(f.Ext) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Label is the caption shown for the file in the given variant.
func (f File) Label(v Variant) string {
	if v == VariantOwner {
		return f.OriginalFilename + " (" + f.ID + ")"
	}
	return f.Name()
}

// FindFile returns the first file whose id or served name matches key.
func FindFile(files []File, key string) (File, bool) {
	for _, f := range files {
		if f.ID == key || f.Name() == key {
			return f, true
		}
	}
	return File{}, false
}

// JoinURL prefixes path with base, tolerating a trailing slash on base. An
// empty base leaves path relative to the current origin.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
