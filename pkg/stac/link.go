package stac

import "github.com/stac-utils/gostac/pkg/errors"

// Link relates a STAC document to another resource. Links are value
// objects: construct them with NewLink and replace rather than mutate.
type Link struct {
	Rel       RelType
	Href      string
	MediaType string
	Title     string
}

// NewLink builds a validated link. The relation must be non-empty and the
// href well formed; media type and title are optional.
func NewLink(rel RelType, href, mediaType, title string) (Link, error) {
	if rel == "" {
		return Link{}, errors.New(errors.ErrCodeInvalidValue, "link relation cannot be empty")
	}
	if err := errors.ValidateHref(href); err != nil {
		return Link{}, err
	}
	return Link{Rel: rel, Href: href, MediaType: mediaType, Title: title}, nil
}
