package stac

import (
	"slices"

	"github.com/stac-utils/gostac/pkg/errors"
)

// Asset is downloadable content associated with an item: imagery,
// thumbnails, sidecar metadata. Value object; items replace assets
// wholesale rather than mutating them in place.
type Asset struct {
	Href        string
	Title       string
	Description string
	MediaType   string
	Roles       []string
}

// NewAsset builds a validated asset. Only the href is required.
func NewAsset(href, title, description, mediaType string, roles []string) (Asset, error) {
	if err := errors.ValidateHref(href); err != nil {
		return Asset{}, err
	}
	return Asset{
		Href:        href,
		Title:       title,
		Description: description,
		MediaType:   mediaType,
		Roles:       slices.Clone(roles),
	}, nil
}

// HasRole reports whether the asset carries the given role.
func (a Asset) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}
