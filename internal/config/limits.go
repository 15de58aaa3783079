package config

const (
	// MaxTitleLength bounds names and titles across all content types
	// (category names, project titles, service titles, client names).
	MaxTitleLength = 255

	// MaxDescriptionLength bounds long-form copy such as service descriptions,
	// testimonial bodies and the about section.
	MaxDescriptionLength = 5000

	// MaxURLLength bounds image and link URLs.
	MaxURLLength = 2048

	// MaxHeroImages is the maximum number of carousel images on the home hero.
	MaxHeroImages = 12

	// MinRating and MaxRating bound testimonial star ratings.
	MinRating = 1
	MaxRating = 5

	// MaxPromptLength caps the design-advice chat prompt.
	MaxPromptLength = 2000

	// MaxUploadSize caps admin media uploads (10MB).
	MaxUploadSize = 10 << 20
)
