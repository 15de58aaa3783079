package content

// HeroContent is the home page hero, stored as {hero: ...} in content/home
type HeroContent struct {
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle" yaml:"subtitle"`
	Images   []string `json:"images" yaml:"images"`
}

// GeneralContent holds about, stats, contact and call-to-action copy,
// stored as {general: ...} in content/general
type GeneralContent struct {
	AboutTitle       string `json:"aboutTitle" yaml:"about_title"`
	AboutDescription string `json:"aboutDescription" yaml:"about_description"`
	AboutImageMain   string `json:"aboutImageMain,omitempty" yaml:"about_image_main"`
	AboutImageSmall  string `json:"aboutImageSmall,omitempty" yaml:"about_image_small"`
	StatsYears       string `json:"statsYears" yaml:"stats_years"`
	StatsProjects    string `json:"statsProjects" yaml:"stats_projects"`
	StatsClients     string `json:"statsClients" yaml:"stats_clients"`
	ContactEmail     string `json:"contactEmail" yaml:"contact_email"`
	ContactPhone     string `json:"contactPhone" yaml:"contact_phone"`
	ContactAddress   string `json:"contactAddress" yaml:"contact_address"`
	CtaTitle         string `json:"ctaTitle,omitempty" yaml:"cta_title"`
	CtaSubtitle      string `json:"ctaSubtitle,omitempty" yaml:"cta_subtitle"`
	CtaButtonText    string `json:"ctaButtonText,omitempty" yaml:"cta_button_text"`
	CtaImage         string `json:"ctaImage,omitempty" yaml:"cta_image"`
}

// SiteContent is the shape of a singleton document in the content collection
type SiteContent struct {
	ID      string          `json:"id,omitempty"`
	Hero    *HeroContent    `json:"hero,omitempty"`
	General *GeneralContent `json:"general,omitempty"`
}
