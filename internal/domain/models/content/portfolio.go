package content

// MainCategory groups portfolio categories on the public site
type MainCategory string

const (
	MainCategoryCurtains        MainCategory = "Curtains"
	MainCategoryBlinds          MainCategory = "Blinds"
	MainCategoryFurnitureCovers MainCategory = "Furniture Covers"
)

// FilterAll is the portfolio filter that matches every main category
const FilterAll = "All"

// MainCategories lists the main categories in display order
var MainCategories = []MainCategory{
	MainCategoryCurtains,
	MainCategoryBlinds,
	MainCategoryFurnitureCovers,
}

// Valid reports whether m is one of the known main categories
func (m MainCategory) Valid() bool {
	for _, known := range MainCategories {
		if m == known {
			return true
		}
	}
	return false
}

// UncategorizedLabel is shown for projects whose category no longer exists
const UncategorizedLabel = "Uncategorized"

// PortfolioCategory is a collection of projects shown under one main category
type PortfolioCategory struct {
	ID           string       `json:"id,omitempty" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	MainCategory MainCategory `json:"mainCategory" yaml:"main_category"`
	Description  string       `json:"description" yaml:"description"`
	CoverImage   string       `json:"coverImage" yaml:"cover_image"`
}

// PortfolioProject is a single installation photo. CategoryID is a soft
// reference into the categories collection; it is never enforced.
type PortfolioProject struct {
	ID         string `json:"id,omitempty" yaml:"-"`
	CategoryID string `json:"categoryId" yaml:"category"`
	Title      string `json:"title" yaml:"title"`
	URL        string `json:"url" yaml:"url"`
}

// CategoryIDField is the project field holding the category id
const CategoryIDField = "categoryId"

// Reference declares that Field of documents in Collection holds ids of
// documents in Target
type Reference struct {
	Collection string
	Field      string
	Target     string
}

// References lists the soft references between collections
var References = []Reference{
	{Collection: CollectionProjects, Field: CategoryIDField, Target: CollectionCategories},
}
