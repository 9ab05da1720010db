package stac

import (
	"slices"

	"github.com/stac-utils/gostac/pkg/errors"
)

// Provider is an organization that captured, processed, or hosts a
// collection's data. Value object; replace rather than mutate.
type Provider struct {
	Name        string
	Description string
	Roles       []ProviderRole
	URL         string
}

// NewProvider builds a validated provider. The name is required, roles
// must come from the closed provider-role vocabulary, and the URL, when
// present, must be a well-formed href.
func NewProvider(name, description string, roles []ProviderRole, url string) (Provider, error) {
	if err := errors.ValidateNonEmpty("provider name", name); err != nil {
		return Provider{}, err
	}
	for _, r := range roles {
		if !knownProviderRoles[r] {
			return Provider{}, errors.New(errors.ErrCodeInvalidValue, "unknown provider role %q", r)
		}
	}
	if url != "" {
		if err := errors.ValidateHref(url); err != nil {
			return Provider{}, err
		}
	}
	return Provider{
		Name:        name,
		Description: description,
		Roles:       slices.Clone(roles),
		URL:         url,
	}, nil
}

// HasRole reports whether the provider carries the given role.
func (p Provider) HasRole(role ProviderRole) bool {
	return slices.Contains(p.Roles, role)
}
