package admin

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
	"atelier/internal/service/sanitizer"
)

// singletonAdmin edits the hero and general documents of the content collection
type singletonAdmin struct {
	cache     repositories.ContentCache
	sanitizer *sanitizer.HTMLSanitizer
	logger    *slog.Logger
}

func (s *singletonAdmin) load(ctx context.Context, id string) content.SiteContent {
	doc := s.cache.FetchSingleton(ctx, content.CollectionContent, id)
	if doc == nil {
		return content.SiteContent{}
	}
	stored, err := content.Decode[content.SiteContent](*doc)
	if err != nil {
		s.logger.Warn("malformed site content, editing from blank",
			"id", id,
			"error", err,
		)
		return content.SiteContent{}
	}
	return stored
}

// save writes {key: value} as the whole singleton document
func (s *singletonAdmin) save(ctx context.Context, id, key string, value interface{}) error {
	fields, err := content.FieldsFrom(value)
	if err != nil {
		return err
	}
	s.cache.SetDocument(ctx, content.CollectionContent, id, content.Fields{
		key: map[string]interface{}(fields),
	})
	return nil
}

// GetHero returns the stored hero, or an empty one
func (s *singletonAdmin) GetHero(ctx context.Context) content.HeroContent {
	hero := content.HeroContent{}
	if stored := s.load(ctx, content.SingletonHome); stored.Hero != nil {
		hero = *stored.Hero
	}
	if hero.Images == nil {
		hero.Images = []string{}
	}
	return hero
}

// SaveHero replaces the hero section
func (s *singletonAdmin) SaveHero(ctx context.Context, hero *content.HeroContent) (*content.HeroContent, error) {
	trim(&hero.Title, &hero.Subtitle)
	images := make([]string, 0, len(hero.Images))
	for _, img := range hero.Images {
		trim(&img)
		if img != "" {
			images = append(images, img)
		}
	}
	hero.Images = images

	if err := validation.ValidateStruct(hero,
		validation.Field(&hero.Title, titleLength),
		validation.Field(&hero.Subtitle, descriptionLength),
		validation.Field(&hero.Images,
			validation.Length(0, config.MaxHeroImages),
			validation.Each(urlLength, urlRule),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.save(ctx, content.SingletonHome, "hero", hero); err != nil {
		return nil, err
	}

	s.logger.Info("hero saved", "images", len(hero.Images))
	return hero, nil
}

// AddHeroImage appends a carousel image
func (s *singletonAdmin) AddHeroImage(ctx context.Context, imageURL string) (*content.HeroContent, error) {
	hero := s.GetHero(ctx)
	hero.Images = append(hero.Images, imageURL)
	return s.SaveHero(ctx, &hero)
}

// RemoveHeroImage drops the carousel image at index
func (s *singletonAdmin) RemoveHeroImage(ctx context.Context, index int) (*content.HeroContent, error) {
	hero := s.GetHero(ctx)
	if index < 0 || index >= len(hero.Images) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("hero image %d not found", index)}
	}
	hero.Images = append(hero.Images[:index:index], hero.Images[index+1:]...)
	return s.SaveHero(ctx, &hero)
}

// GetGeneral returns the stored general content, or an empty one
func (s *singletonAdmin) GetGeneral(ctx context.Context) content.GeneralContent {
	if stored := s.load(ctx, content.SingletonGeneral); stored.General != nil {
		return *stored.General
	}
	return content.GeneralContent{}
}

// SaveGeneral replaces the about, contact and CTA copy
func (s *singletonAdmin) SaveGeneral(ctx context.Context, g *content.GeneralContent) (*content.GeneralContent, error) {
	trim(&g.AboutTitle, &g.AboutDescription, &g.AboutImageMain, &g.AboutImageSmall,
		&g.StatsYears, &g.StatsProjects, &g.StatsClients,
		&g.ContactEmail, &g.ContactPhone, &g.ContactAddress,
		&g.CtaTitle, &g.CtaSubtitle, &g.CtaButtonText, &g.CtaImage)
	g.CtaTitle = s.sanitizer.Sanitize(g.CtaTitle)
	g.CtaButtonText = s.sanitizer.Sanitize(g.CtaButtonText)

	if err := validation.ValidateStruct(g,
		validation.Field(&g.AboutTitle, titleLength),
		validation.Field(&g.AboutDescription, descriptionLength),
		validation.Field(&g.AboutImageMain, urlLength, urlRule),
		validation.Field(&g.AboutImageSmall, urlLength, urlRule),
		validation.Field(&g.StatsYears, validation.Length(0, 32)),
		validation.Field(&g.StatsProjects, validation.Length(0, 32)),
		validation.Field(&g.StatsClients, validation.Length(0, 32)),
		validation.Field(&g.ContactEmail, titleLength, emailRule),
		validation.Field(&g.ContactPhone, validation.Length(0, 64)),
		validation.Field(&g.ContactAddress, titleLength),
		validation.Field(&g.CtaTitle, titleLength),
		validation.Field(&g.CtaSubtitle, descriptionLength),
		validation.Field(&g.CtaButtonText, validation.Length(0, 64)),
		validation.Field(&g.CtaImage, urlLength, urlRule),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.save(ctx, content.SingletonGeneral, "general", g); err != nil {
		return nil, err
	}

	s.logger.Info("general content saved")
	return g, nil
}
