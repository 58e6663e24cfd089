package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeFilters() PlaceFilters {
	lat, lon := -2.53, -44.30
	return PlaceFilters{
		Budget:    BudgetLow,
		Type:      "gastronomia",
		Period:    PeriodNight,
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func TestPlaceFilters_Validate(t *testing.T) {
	f := completeFilters()
	assert.NoError(t, f.Validate())
}

func TestPlaceFilters_ValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PlaceFilters)
	}{
		{"budget", func(f *PlaceFilters) { f.Budget = "" }},
		{"type", func(f *PlaceFilters) { f.Type = "" }},
		{"period", func(f *PlaceFilters) { f.Period = "" }},
		{"latitude", func(f *PlaceFilters) { f.Latitude = nil }},
		{"longitude", func(f *PlaceFilters) { f.Longitude = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := completeFilters()
			tc.mutate(&f)

			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncompleteFilters))
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}

func TestPlaceFilters_ValidateCollectsAllMissing(t *testing.T) {
	f := PlaceFilters{}
	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteFilters))
	for _, field := range []string{"budget", "type", "period", "latitude", "longitude"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestPlaceFilters_OptionalBooleans(t *testing.T) {
	f := completeFilters()
	assert.False(t, f.WantsParking())
	assert.False(t, f.WantsAccessible())

	no := false
	f.TemEstacionamento = &no
	f.Acessivel = &no
	assert.False(t, f.WantsParking())
	assert.False(t, f.WantsAccessible())

	yes := true
	f.TemEstacionamento = &yes
	f.Acessivel = &yes
	assert.True(t, f.WantsParking())
	assert.True(t, f.WantsAccessible())
}

func TestFilterVocabularies(t *testing.T) {
	for _, budget := range []string{BudgetLow, BudgetMid, BudgetHigh} {
		assert.NotEmpty(t, BudgetDescriptions[budget], "budget %q has no description", budget)
	}
	for _, distance := range []string{DistanceNear, DistanceMedium, DistanceFar} {
		assert.NotEmpty(t, DistanciaDescriptions[distance], "distance %q has no description", distance)
	}
	for _, typ := range []string{"gastronomia", "cultura", "ao-ar-livre", "aventura", "casual"} {
		assert.NotEmpty(t, TypeDescriptions[typ], "type %q has no description", typ)
	}
}

func TestPeriodDescription(t *testing.T) {
	assert.Equal(t, "durante o dia", PeriodDescription(PeriodDay))
	assert.Equal(t, "à noite", PeriodDescription(PeriodNight))
	assert.Equal(t, "à noite", PeriodDescription(""))
}
