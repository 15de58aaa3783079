package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMarshalFlattensID(t *testing.T) {
	doc := NewDocument("c1", Fields{"name": "Acme", "logo": "http://x/a.png", "id": "ignored"})

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","name":"Acme","logo":"http://x/a.png"}`, string(data))

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "c1", back.ID)
	assert.NotContains(t, back.Fields, IDField)
}

func TestFieldsMergeIsShallowAndKeepsID(t *testing.T) {
	f := Fields{"rating": 5, "hero": map[string]interface{}{"title": "a", "subtitle": "b"}}
	f.Merge(Fields{"rating": 3, "id": "x", "hero": map[string]interface{}{"title": "c"}})

	assert.Equal(t, 3, f["rating"])
	assert.NotContains(t, f, IDField)
	assert.Equal(t, map[string]interface{}{"title": "c"}, f["hero"])
}

func TestDecodeTypedContent(t *testing.T) {
	doc := NewDocument("t1", Fields{
		"name":    "Jane",
		"role":    "Homeowner",
		"content": "Lovely curtains",
		"rating":  float64(4),
	})

	testimonial, err := Decode[Testimonial](doc)
	require.NoError(t, err)
	assert.Equal(t, "t1", testimonial.ID)
	assert.Equal(t, 4, testimonial.Rating)
}

func TestFieldsFromStripsID(t *testing.T) {
	fields, err := FieldsFrom(PortfolioProject{ID: "p1", CategoryID: "c1", Title: "Linen drapes", URL: "http://x/p.jpg"})
	require.NoError(t, err)
	assert.Equal(t, Fields{"categoryId": "c1", "title": "Linen drapes", "url": "http://x/p.jpg"}, fields)
}

func TestDecodeAllSkipsMismatchedDocuments(t *testing.T) {
	docs := []Document{
		NewDocument("a", Fields{"name": "Acme", "logo": "l"}),
		NewDocument("b", Fields{"name": 42}),
	}

	logos, skipped := DecodeAll[ClientLogo](docs)
	assert.Len(t, logos, 1)
	assert.Equal(t, 1, skipped)
}

func TestMainCategoryValid(t *testing.T) {
	assert.True(t, MainCategoryBlinds.Valid())
	assert.False(t, MainCategory("Rugs").Valid())
}
