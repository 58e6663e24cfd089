package recommendations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/encontros-app/date-spots-api/internal/types"
)

var (
	// ErrMalformedResponse means the completion text could not be parsed as
	// JSON, even after extracting the outermost {...} block.
	ErrMalformedResponse = errors.New("malformed AI response")

	// ErrUnexpectedShape means the JSON parsed but has no usable
	// "recommendations" array.
	ErrUnexpectedShape = errors.New("unexpected AI response shape")
)

// citationMarkerRe matches web-search citation artifacts like "[1]" or
// "[2, 3]", including the whitespace that precedes them.
var citationMarkerRe = regexp.MustCompile(`\s*\[\d+(,\s*\d+)*\]`)

// Defaults applied when the model omits cosmetic fields. Records are never
// dropped for missing fields; business constraints (distance, price) are the
// prompt contract's responsibility, not the normalizer's.
const (
	defaultName        = "Lugar sem nome"
	defaultAddress     = "São Luís, MA"
	defaultDescription = "Descrição não disponível"
	defaultActivity    = "Aproveitem juntos"
	defaultHours       = "Consultar horários"
)

// Marker tags present on every normalized place.
var markerTags = []string{"romântico", "perplexity-recomendado"}

// rawRecommendation mirrors the field set the prompt contract asks the model
// to produce.
type rawRecommendation struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Neighborhood      string   `json:"neighborhood"`
	PriceRange        string   `json:"priceRange"`
	DistanceKm        *float64 `json:"distanceKm"`
	CuisineType       *string  `json:"cuisineType"`
	Description       string   `json:"description"`
	Rating            float64  `json:"rating"`
	OpeningHours      string   `json:"openingHours"`
	RomanticActivity  string   `json:"romanticActivity"`
	SpecialTip        string   `json:"specialTip"`
	TemEstacionamento bool     `json:"temEstacionamento"`
	Acessivel         bool     `json:"acessivel"`
}

// normalizeRecommendations converts the raw completion text into the strict
// Place list. It either returns the full list or an error, never a partial
// result. Output order matches the model's order; nothing is re-sorted or
// deduplicated.
func normalizeRecommendations(raw string, filters types.PlaceFilters, now time.Time) ([]types.Place, error) {
	var envelope struct {
		Recommendations json.RawMessage `json:"recommendations"`
	}

	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		cleaned := extractJSONObject(raw)
		if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, firstLine(raw))
		}
	}

	if len(envelope.Recommendations) == 0 || string(envelope.Recommendations) == "null" {
		return nil, fmt.Errorf("%w: missing recommendations array", ErrUnexpectedShape)
	}
	var records []rawRecommendation
	if err := json.Unmarshal(envelope.Recommendations, &records); err != nil {
		return nil, fmt.Errorf("%w: recommendations is not an array of objects", ErrUnexpectedShape)
	}

	batchID := now.UnixMilli()
	places := make([]types.Place, 0, len(records))
	for idx, rec := range records {
		places = append(places, normalizeRecord(rec, filters, batchID, idx))
	}
	return places, nil
}

func normalizeRecord(rec rawRecommendation, filters types.PlaceFilters, batchID int64, idx int) types.Place {
	name := rec.Name
	if name == "" {
		name = defaultName
	}
	address := rec.Address
	if address == "" {
		address = defaultAddress
	}
	description := rec.Description
	if description == "" {
		description = defaultDescription
	}
	activity := rec.RomanticActivity
	if activity == "" {
		activity = defaultActivity
	}
	hours := rec.OpeningHours
	if hours == "" {
		hours = defaultHours
	}

	tags := append([]string{}, markerTags...)
	if rec.CuisineType != nil && *rec.CuisineType != "" {
		tags = append(tags, strings.ToLower(*rec.CuisineType))
	}

	priceRange := rec.PriceRange
	if priceRange == "" {
		priceRange = filters.Budget
	}

	return types.Place{
		ID:                fmt.Sprintf("rec-%d-%d", batchID, idx),
		Name:              name,
		Description:       stripCitationMarkers(description),
		Address:           address,
		MapURL:            mapsSearchURL(name, address),
		Budget:            filters.Budget,
		Type:              filters.Type,
		Period:            filters.Period,
		Tags:              tags,
		Rating:            rec.Rating,
		SuggestedActivity: stripCitationMarkers(activity),
		OpeningHours:      hours,
		SpecialTip:        stripCitationMarkers(rec.SpecialTip),
		AIRecommended:     true,
		TemEstacionamento: rec.TemEstacionamento,
		Acessivel:         rec.Acessivel,
		CuisineType:       rec.CuisineType,
		DistanceKm:        rec.DistanceKm,
		PriceRange:        &priceRange,
	}
}

// stripCitationMarkers removes "[n]" / "[n, m]" artifacts and trims the
// result.
func stripCitationMarkers(s string) string {
	return strings.TrimSpace(citationMarkerRe.ReplaceAllString(s, ""))
}

// extractJSONObject pulls the outermost {...} block out of completion text
// that wraps the JSON in prose or markdown fences. Returns the input
// unchanged when no object is found, letting the caller's parse fail.
func extractJSONObject(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	first := strings.Index(response, "{")
	if first == -1 {
		return response
	}
	last := strings.LastIndex(response, "}")
	if last == -1 || last <= first {
		return response
	}
	return strings.TrimSpace(response[first : last+1])
}

// mapsSearchURL derives the deterministic maps deep link for a venue.
func mapsSearchURL(name, address string) string {
	query := url.QueryEscape(name + " " + address + " São Luís MA")
	return "https://maps.google.com/maps?q=" + query
}

// firstLine truncates raw completion text for error messages.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
