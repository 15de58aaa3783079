package content

// Collection names in the hosted document store
const (
	CollectionCategories   = "categories"
	CollectionProjects     = "projects"
	CollectionServices     = "services"
	CollectionTestimonials = "testimonials"
	CollectionClients      = "clients"

	// CollectionContent holds singleton page-section documents
	CollectionContent = "content"
)

// Singleton document ids within CollectionContent
const (
	SingletonHome    = "home"
	SingletonGeneral = "general"
)

// Collections lists every list-style collection
var Collections = []string{
	CollectionCategories,
	CollectionProjects,
	CollectionServices,
	CollectionTestimonials,
	CollectionClients,
}
