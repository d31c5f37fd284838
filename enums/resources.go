package enums

// Upstream API resources, also used as cache key namespaces and span names.
const (
	ProjectResource     = "project"
	MosqueResource      = "mosque"
	DonationResource    = "donation"
	LocationResource    = "location"
	ImportResource      = "import"
	AuthResource        = "auth"
	GovernorateResource = "governorate"
)
