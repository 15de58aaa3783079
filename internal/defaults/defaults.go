// Package defaults loads the site copy compiled into the binary: fallbacks for
// empty stored content and the sample documents used by the seeder.
package defaults

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"atelier/internal/domain/models/content"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// Site holds fallback values for the public site
type Site struct {
	Hero                 content.HeroContent    `yaml:"hero"`
	HeroPlaceholderImage string                 `yaml:"hero_placeholder_image"`
	General              content.GeneralContent `yaml:"general"`
	TestimonialImage     string                 `yaml:"testimonial_image"`
	TestimonialRating    int                    `yaml:"testimonial_rating"`
	Articles             []content.Article      `yaml:"articles"`
}

// Samples holds demo documents for a fresh store. Descriptions left empty are
// filled by the seeder.
type Samples struct {
	Hero         content.HeroContent         `yaml:"hero"`
	Categories   []content.PortfolioCategory `yaml:"categories"`
	Projects     []content.PortfolioProject  `yaml:"projects"`
	Services     []content.ServiceItem       `yaml:"services"`
	Testimonials []content.Testimonial       `yaml:"testimonials"`
	Clients      []content.ClientLogo        `yaml:"clients"`
}

var (
	siteOnce sync.Once
	site     *Site
	siteErr  error
)

// LoadSite parses the embedded site defaults. The result is cached; callers
// must not modify it.
func LoadSite() (*Site, error) {
	siteOnce.Do(func() {
		var s Site
		if err := load("data/site.yaml", &s); err != nil {
			siteErr = err
			return
		}
		site = &s
	})
	return site, siteErr
}

// MustLoadSite is LoadSite for program start-up
func MustLoadSite() *Site {
	s, err := LoadSite()
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSamples parses the embedded sample documents
func LoadSamples() (*Samples, error) {
	var s Samples
	if err := load("data/samples.yaml", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func load(name string, out interface{}) error {
	data, err := dataFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

// WithGeneral fills blank fields of g from the defaults
func (s *Site) WithGeneral(g content.GeneralContent) content.GeneralContent {
	d := s.General
	fill(&g.AboutTitle, d.AboutTitle)
	fill(&g.AboutDescription, d.AboutDescription)
	fill(&g.AboutImageMain, d.AboutImageMain)
	fill(&g.AboutImageSmall, d.AboutImageSmall)
	fill(&g.StatsYears, d.StatsYears)
	fill(&g.StatsProjects, d.StatsProjects)
	fill(&g.StatsClients, d.StatsClients)
	fill(&g.ContactEmail, d.ContactEmail)
	fill(&g.ContactPhone, d.ContactPhone)
	fill(&g.ContactAddress, d.ContactAddress)
	fill(&g.CtaTitle, d.CtaTitle)
	fill(&g.CtaSubtitle, d.CtaSubtitle)
	fill(&g.CtaButtonText, d.CtaButtonText)
	fill(&g.CtaImage, d.CtaImage)
	return g
}

// WithHero fills a blank subtitle. Title and images stay as stored: an empty
// carousel is shown with the placeholder image.
func (s *Site) WithHero(h content.HeroContent) content.HeroContent {
	fill(&h.Subtitle, s.Hero.Subtitle)
	if h.Images == nil {
		h.Images = []string{}
	}
	return h
}

func fill(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
