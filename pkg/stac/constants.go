package stac

// Version is the STAC specification version the object model implements.
const Version = "1.0.0"

// RelType is a link relation between a STAC document and another resource.
type RelType string

// Relation types defined by the STAC specification.
const (
	RelSelf      RelType = "self"
	RelRoot      RelType = "root"
	RelParent    RelType = "parent"
	RelChild     RelType = "child"
	RelItem      RelType = "item"
	RelAlternate RelType = "alternate"
	RelCanonical RelType = "canonical"
	RelVia       RelType = "via"
	RelPrev      RelType = "prev"
	RelNext      RelType = "next"
	RelPreview   RelType = "preview"
	RelLicense   RelType = "license"
)

// Media types for STAC documents and commonly cataloged assets.
const (
	MediaTypeCatalog    = "application/json"
	MediaTypeCollection = "application/json"
	MediaTypeItem       = "application/geo+json"

	MediaTypeGeoTIFF    = "image/tiff; application=geotiff"
	MediaTypeCOG        = "image/tiff; application=geotiff; profile=cloud-optimized"
	MediaTypeJPEG2000   = "image/jp2"
	MediaTypePNG        = "image/png"
	MediaTypeJPEG       = "image/jpeg"
	MediaTypeXML        = "text/xml"
	MediaTypeJSON       = "application/json"
	MediaTypeText       = "text/plain"
	MediaTypeGeoJSON    = "application/geo+json"
	MediaTypeGeoPackage = "application/geopackage+sqlite3"
	MediaTypeHDF5       = "application/x-hdf5"
	MediaTypeHDF        = "application/x-hdf"
	MediaTypeHTML       = "text/html"
	MediaTypePDF        = "application/pdf"
)

// ProviderRole describes how a provider relates to a collection's data.
type ProviderRole string

// Provider roles defined by the STAC specification. The host should be
// no more than one provider, listed last.
const (
	RoleLicensor  ProviderRole = "licensor"
	RoleProducer  ProviderRole = "producer"
	RoleProcessor ProviderRole = "processor"
	RoleHost      ProviderRole = "host"
)

// knownProviderRoles is the closed set accepted by NewProvider.
var knownProviderRoles = map[ProviderRole]bool{
	RoleLicensor:  true,
	RoleProducer:  true,
	RoleProcessor: true,
	RoleHost:      true,
}

// Asset roles suggested by the STAC best practices. Asset roles are an
// open vocabulary; these are only the common ones.
const (
	AssetRoleThumbnail = "thumbnail"
	AssetRoleOverview  = "overview"
	AssetRoleData      = "data"
	AssetRoleMetadata  = "metadata"
	AssetRoleVisual    = "visual"
)

// License identifiers. Collections must carry either an SPDX identifier
// or one of the two catch-all values below.
const (
	LicenseProprietary = "proprietary"
	LicenseVarious     = "various"
)
