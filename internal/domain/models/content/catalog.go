package content

// ServiceItem is an offering listed in the services section
type ServiceItem struct {
	ID          string `json:"id,omitempty" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Link        string `json:"link,omitempty" yaml:"link"`
}

// Testimonial is a client review
type Testimonial struct {
	ID      string `json:"id,omitempty" yaml:"-"`
	Name    string `json:"name" yaml:"name"`
	Role    string `json:"role" yaml:"role"`
	Image   string `json:"image" yaml:"image"`
	Content string `json:"content" yaml:"content"`
	Rating  int    `json:"rating" yaml:"rating"`
}

// ClientLogo is shown in the "trusted by" strip
type ClientLogo struct {
	ID   string `json:"id,omitempty" yaml:"-"`
	Name string `json:"name" yaml:"name"`
	Logo string `json:"logo" yaml:"logo"`
}

// Article is a blog teaser. Articles are static site copy, not stored documents.
type Article struct {
	ID       string `json:"id" yaml:"id"`
	Date     string `json:"date" yaml:"date"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Image    string `json:"image" yaml:"image"`
}
