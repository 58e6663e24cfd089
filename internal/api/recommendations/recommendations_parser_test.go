package recommendations

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encontros-app/date-spots-api/internal/types"
)

func testFilters() types.PlaceFilters {
	lat, lon := -2.53, -44.30
	return types.PlaceFilters{
		Budget:    types.BudgetMid,
		Type:      "gastronomia",
		Period:    types.PeriodDay,
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func TestNormalizeRecommendations_BareJSON(t *testing.T) {
	raw := `{"recommendations": [
		{"name": "Restaurante Azul", "address": "Rua das Flores, 10 - Centro, São Luís - MA",
		 "description": "Jantar à luz de velas.", "rating": 4.5, "cuisineType": "Japonesa",
		 "distanceKm": 2.1, "priceRange": "$$", "temEstacionamento": true},
		{"name": "Bar do Porto", "address": "Av. Litorânea, 200", "description": "Vista para o mar."}
	]}`

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	places, err := normalizeRecommendations(raw, testFilters(), now)
	require.NoError(t, err)
	require.Len(t, places, 2)

	// Order follows the AI response, no re-sorting.
	assert.Equal(t, "Restaurante Azul", places[0].Name)
	assert.Equal(t, "Bar do Porto", places[1].Name)

	first := places[0]
	assert.True(t, first.AIRecommended)
	assert.Equal(t, 4.5, first.Rating)
	assert.True(t, first.TemEstacionamento)
	assert.False(t, first.Acessivel)
	require.NotNil(t, first.CuisineType)
	assert.Equal(t, "Japonesa", *first.CuisineType)
	require.NotNil(t, first.DistanceKm)
	assert.Equal(t, 2.1, *first.DistanceKm)
	assert.Contains(t, first.Tags, "romântico")
	assert.Contains(t, first.Tags, "perplexity-recomendado")
	assert.Contains(t, first.Tags, "japonesa")
	assert.Contains(t, first.MapURL, url.QueryEscape("Restaurante Azul"))
	assert.Contains(t, first.MapURL, url.QueryEscape("Rua das Flores"))

	// IDs are unique within the batch.
	assert.NotEqual(t, places[0].ID, places[1].ID)
}

func TestNormalizeRecommendations_JSONEmbeddedInProse(t *testing.T) {
	bare := `{"recommendations": [{"name": "Café Central", "description": "Aconchegante."}]}`
	wrapped := "Aqui estão as recomendações:\n```json\n" + bare + "\n```\nEspero que goste!"

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	fromBare, err := normalizeRecommendations(bare, testFilters(), now)
	require.NoError(t, err)
	fromWrapped, err := normalizeRecommendations(wrapped, testFilters(), now)
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromWrapped)
}

func TestNormalizeRecommendations_Idempotent(t *testing.T) {
	raw := `{"recommendations": [{"name": "Café Central", "rating": 4.0}]}`
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first, err := normalizeRecommendations(raw, testFilters(), now)
	require.NoError(t, err)
	second, err := normalizeRecommendations(raw, testFilters(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalizeRecommendations_CitationMarkersStripped(t *testing.T) {
	raw := `{"recommendations": [{
		"name": "X",
		"description": "Ótimo lugar [1] para casais [2, 3].",
		"romanticActivity": "Caminhada na orla [4]",
		"specialTip": "Reserve cedo [5, 6, 7]."
	}]}`

	places, err := normalizeRecommendations(raw, testFilters(), time.Now())
	require.NoError(t, err)
	require.Len(t, places, 1)

	assert.Equal(t, "Ótimo lugar para casais.", places[0].Description)
	assert.Equal(t, "Caminhada na orla", places[0].SuggestedActivity)
	assert.Equal(t, "Reserve cedo.", places[0].SpecialTip)
}

func TestNormalizeRecommendations_DefaultsForMissingFields(t *testing.T) {
	raw := `{"recommendations": [{"name": "X"}]}`

	filters := testFilters()
	places, err := normalizeRecommendations(raw, filters, time.Now())
	require.NoError(t, err)
	require.Len(t, places, 1)

	p := places[0]
	assert.Equal(t, "X", p.Name)
	assert.Equal(t, defaultDescription, p.Description)
	assert.Equal(t, defaultAddress, p.Address)
	assert.Equal(t, defaultActivity, p.SuggestedActivity)
	assert.Equal(t, defaultHours, p.OpeningHours)
	assert.Zero(t, p.Rating)
	assert.False(t, p.TemEstacionamento)
	assert.False(t, p.Acessivel)
	assert.True(t, p.AIRecommended)
	assert.Nil(t, p.CuisineType)
	assert.Nil(t, p.DistanceKm)
	require.NotNil(t, p.PriceRange)
	assert.Equal(t, filters.Budget, *p.PriceRange)
}

func TestNormalizeRecommendations_MissingNameGetsPlaceholder(t *testing.T) {
	raw := `{"recommendations": [{"description": "Sem nome, mas válido."}]}`

	places, err := normalizeRecommendations(raw, testFilters(), time.Now())
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, defaultName, places[0].Name)
}

func TestNormalizeRecommendations_MalformedInput(t *testing.T) {
	_, err := normalizeRecommendations("not json at all", testFilters(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestNormalizeRecommendations_UnexpectedShape(t *testing.T) {
	cases := []string{
		`{"foo": 1}`,
		`{"recommendations": null}`,
		`{"recommendations": 42}`,
	}
	for _, raw := range cases {
		_, err := normalizeRecommendations(raw, testFilters(), time.Now())
		require.Error(t, err, "input: %s", raw)
		assert.True(t, errors.Is(err, ErrUnexpectedShape), "input: %s", raw)
	}
}

func TestStripCitationMarkers(t *testing.T) {
	assert.Equal(t, "Ótimo lugar para casais.", stripCitationMarkers("Ótimo lugar [1] para casais [2, 3]."))
	assert.Equal(t, "Sem marcadores.", stripCitationMarkers("Sem marcadores."))
	assert.Equal(t, "", stripCitationMarkers(" [12] "))
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSONObject("prefix {\"a\": 1} suffix"))
	assert.Equal(t, `{"a": 1}`, extractJSONObject("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, "no braces here", extractJSONObject("no braces here"))
}
