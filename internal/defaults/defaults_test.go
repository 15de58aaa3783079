package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain/models/content"
)

func TestLoadSite(t *testing.T) {
	s, err := LoadSite()
	require.NoError(t, err)

	assert.Equal(t, `Let's Build Your <span class="text-brand-gold">Dream</span><br />Home Ambience`, s.General.CtaTitle)
	assert.Equal(t, "Transform your vision into reality with our expert guidance.", s.General.CtaSubtitle)
	assert.Equal(t, "Get Pricing", s.General.CtaButtonText)
	assert.Equal(t, "https://picsum.photos/1920/1080?random=12", s.General.CtaImage)
	assert.Equal(t, 5, s.TestimonialRating)
	assert.Len(t, s.Articles, 3)
}

func TestWithGeneralKeepsStoredValues(t *testing.T) {
	s := MustLoadSite()

	g := s.WithGeneral(content.GeneralContent{AboutTitle: "Our Story", ContactEmail: "hi@studio.test"})

	assert.Equal(t, "Our Story", g.AboutTitle)
	assert.Equal(t, "hi@studio.test", g.ContactEmail)
	assert.Equal(t, "15+", g.StatsYears)
	assert.Equal(t, "Get Pricing", g.CtaButtonText)
}

func TestWithHero(t *testing.T) {
	s := MustLoadSite()

	h := s.WithHero(content.HeroContent{Title: "Soft Light"})
	assert.Equal(t, "Soft Light", h.Title)
	assert.Equal(t, "Your luxury interior design partner.", h.Subtitle)
	assert.NotNil(t, h.Images)
}

func TestLoadSamplesReferencesKnownCategories(t *testing.T) {
	samples, err := LoadSamples()
	require.NoError(t, err)

	keys := map[string]bool{}
	for _, c := range samples.Categories {
		assert.True(t, c.MainCategory.Valid(), c.Name)
		keys[c.ID] = true
	}
	for _, p := range samples.Projects {
		assert.True(t, keys[p.CategoryID], p.Title)
	}
}
