package admin

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atelier/internal/config"
	"atelier/internal/domain/models/content"
)

// urlRule accepts empty values and absolute http(s) URLs
var urlRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
})

// emailRule accepts empty values and bare addresses
var emailRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.New("must be a valid email address")
	}
	return nil
})

var mainCategoryRule = validation.By(func(value interface{}) error {
	m, _ := value.(content.MainCategory)
	if !m.Valid() {
		return errors.New("must be one of Curtains, Blinds, Furniture Covers")
	}
	return nil
})

var (
	titleLength       = validation.Length(0, config.MaxTitleLength)
	descriptionLength = validation.Length(0, config.MaxDescriptionLength)
	urlLength         = validation.Length(0, config.MaxURLLength)
)

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func categoryKind() kind[content.PortfolioCategory] {
	return kind[content.PortfolioCategory]{
		collection: content.CollectionCategories,
		name:       "category",
		id:         func(c *content.PortfolioCategory) *string { return &c.ID },
		normalize: func(c *content.PortfolioCategory) {
			trim(&c.Name, &c.Description, &c.CoverImage)
			c.MainCategory = content.MainCategory(strings.TrimSpace(string(c.MainCategory)))
		},
		validate: func(c *content.PortfolioCategory) error {
			return validation.ValidateStruct(c,
				validation.Field(&c.Name, validation.Required, titleLength),
				validation.Field(&c.MainCategory, validation.Required, mainCategoryRule),
				validation.Field(&c.Description, descriptionLength),
				validation.Field(&c.CoverImage, urlLength, urlRule),
			)
		},
	}
}

func projectKind() kind[content.PortfolioProject] {
	return kind[content.PortfolioProject]{
		collection: content.CollectionProjects,
		name:       "project",
		id:         func(p *content.PortfolioProject) *string { return &p.ID },
		normalize: func(p *content.PortfolioProject) {
			trim(&p.CategoryID, &p.Title, &p.URL)
		},
		validate: func(p *content.PortfolioProject) error {
			return validation.ValidateStruct(p,
				validation.Field(&p.CategoryID, validation.Required),
				validation.Field(&p.Title, titleLength),
				validation.Field(&p.URL, validation.Required, urlLength, urlRule),
			)
		},
	}
}

func serviceKind() kind[content.ServiceItem] {
	return kind[content.ServiceItem]{
		collection: content.CollectionServices,
		name:       "service",
		id:         func(s *content.ServiceItem) *string { return &s.ID },
		normalize: func(s *content.ServiceItem) {
			trim(&s.Title, &s.Description, &s.Image, &s.Link)
		},
		validate: func(s *content.ServiceItem) error {
			return validation.ValidateStruct(s,
				validation.Field(&s.Title, validation.Required, titleLength),
				validation.Field(&s.Description, descriptionLength),
				validation.Field(&s.Image, urlLength, urlRule),
				validation.Field(&s.Link, urlLength),
			)
		},
	}
}

func testimonialKind() kind[content.Testimonial] {
	return kind[content.Testimonial]{
		collection: content.CollectionTestimonials,
		name:       "testimonial",
		id:         func(t *content.Testimonial) *string { return &t.ID },
		normalize: func(t *content.Testimonial) {
			trim(&t.Name, &t.Role, &t.Image, &t.Content)
			if t.Rating == 0 {
				t.Rating = config.MaxRating
			}
		},
		validate: func(t *content.Testimonial) error {
			return validation.ValidateStruct(t,
				validation.Field(&t.Name, validation.Required, titleLength),
				validation.Field(&t.Role, titleLength),
				validation.Field(&t.Image, urlLength, urlRule),
				validation.Field(&t.Content, descriptionLength),
				validation.Field(&t.Rating, validation.Min(config.MinRating), validation.Max(config.MaxRating)),
			)
		},
	}
}

func clientKind() kind[content.ClientLogo] {
	return kind[content.ClientLogo]{
		collection: content.CollectionClients,
		name:       "client",
		id:         func(c *content.ClientLogo) *string { return &c.ID },
		normalize: func(c *content.ClientLogo) {
			trim(&c.Name, &c.Logo)
		},
		validate: func(c *content.ClientLogo) error {
			return validation.ValidateStruct(c,
				validation.Field(&c.Name, validation.Required, titleLength),
				validation.Field(&c.Logo, validation.Required, urlLength, urlRule),
			)
		},
	}
}
