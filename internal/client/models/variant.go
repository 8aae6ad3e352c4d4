package models

import (
	"errors"
	"strings"
)

// Variant selects how much of a file listing is shown and what can be done
// with it.
type Variant string

const (
	// VariantOwner labels files with their original filename and id and
	// offers rename.
	VariantOwner Variant = "owner"

	// VariantPublic labels files with id and extension only.
	VariantPublic Variant = "public"
)

var ErrUnknownVariant = errors.New("variant must be owner or public")

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantOwner:
		return VariantOwner, nil
	case VariantPublic:
		return VariantPublic, nil
	}
	return "", ErrUnknownVariant
}

func (v Variant) CanRename() bool {
	return v == VariantOwner
}
