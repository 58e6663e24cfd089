package types

import (
	"errors"
	"fmt"
	"strings"
)

// Filter vocabulary accepted on the wire. The UI only ever emits values from
// these closed sets, so the lookup tables below cannot miss at runtime.
const (
	BudgetLow  = "$"
	BudgetMid  = "$$"
	BudgetHigh = "$$$"

	PeriodDay   = "dia"
	PeriodNight = "noite"

	DistanceNear   = "perto"
	DistanceMedium = "medio"
	DistanceFar    = "longe"
)

// ErrIncompleteFilters signals that a required filter field is missing from
// the inbound request. Surfaced as HTTP 400; the completion API is never
// called in that case.
var ErrIncompleteFilters = errors.New("incomplete filters")

// PlaceFilters is the user's date-planning selection as sent by the mobile
// app. Optional fields use pointers so that "not sent" is distinguishable
// from an explicit false/zero value.
type PlaceFilters struct {
	Budget            string   `json:"budget"`
	Type              string   `json:"type"`
	Period            string   `json:"period"`
	Ambiente          string   `json:"ambiente,omitempty"`
	Distancia         string   `json:"distancia,omitempty"`
	TemEstacionamento *bool    `json:"temEstacionamento,omitempty"`
	Acessivel         *bool    `json:"acessivel,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// Validate checks the mandatory fields. Every returned error wraps
// ErrIncompleteFilters so callers can map it to a client error.
func (f *PlaceFilters) Validate() error {
	var missing []string
	if f.Budget == "" {
		missing = append(missing, "budget")
	}
	if f.Type == "" {
		missing = append(missing, "type")
	}
	if f.Period == "" {
		missing = append(missing, "period")
	}
	if f.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if f.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteFilters, strings.Join(missing, ", "))
	}
	return nil
}

// WantsParking reports whether the user marked parking as required.
// Absence of the field means "no preference", not "no".
func (f *PlaceFilters) WantsParking() bool {
	return f.TemEstacionamento != nil && *f.TemEstacionamento
}

// WantsAccessible reports whether wheelchair accessibility is required.
func (f *PlaceFilters) WantsAccessible() bool {
	return f.Acessivel != nil && *f.Acessivel
}

// BudgetDescriptions maps each price tier to its prompt-facing definition,
// with concrete R$ thresholds and venue examples so the model does not
// conflate tiers.
var BudgetDescriptions = map[string]string{
	BudgetLow:  "BARATO/POPULAR - gasto máximo R$30-50 por pessoa. Tipos de lugares: churrasquinhos de rua, tapiocarias, lanchonetes de bairro, hamburguerias simples, pizzarias populares, food trucks, espetinhos, açaiterias, creperias simples, pastelarias, cachorro-quente. NÃO são restaurantes sofisticados.",
	BudgetMid:  "MODERADO - gasto entre R$50-150 por pessoa. Tipos de lugares: restaurantes casuais com ambiente agradável, pizzarias gourmet, sushi casual, bistrôs, hamburguerias gourmet, bares com boa comida, restaurantes de bairro bem avaliados.",
	BudgetHigh: "PREMIUM/CARO - gasto acima de R$150 por pessoa. APENAS: restaurantes fine dining, alta gastronomia, frutos do mar premium, steakhouses de luxo, restaurantes com chef renomado, experiências gastronômicas exclusivas.",
}

// TypeDescriptions maps each activity type to its prompt-facing definition.
var TypeDescriptions = map[string]string{
	"gastronomia": "gastronomia variada - INCLUA DIFERENTES TIPOS: japonesa (sushi, temaki), italiana (massas, pizzas), brasileira/regional (nordestina, frutos do mar), hamburguerias, churrasquinhos, tapiocarias. VARIE os tipos de culinária nas recomendações.",
	"cultura":     "cultura e entretenimento: museus, teatros, cinemas, galerias de arte, exposições, centros culturais, casas de shows",
	"ao-ar-livre": "atividades ao ar livre: parques, praias, trilhas, orla, praças, mirantes, jardins",
	"aventura":    "aventura e atividades: escalada, tirolesa, paintball, kart, parques de diversão, passeios de barco",
	"casual":      "lugares casuais: cafeterias, bares tranquilos, sorveterias, docerias, casas de açaí",
}

// AmbienteDescriptions maps the optional vibe filter to its definition.
var AmbienteDescriptions = map[string]string{
	"intimo":    "íntimo e reservado - mesas afastadas, iluminação baixa, ambiente romântico e privativo",
	"animado":   "animado e movimentado - música, pessoas, ambiente descontraído e festivo",
	"tranquilo": "tranquilo e relaxante - sem música alta, ambiente calmo para conversar",
}

// DistanciaDescriptions maps each distance band to its definition. The bands
// do not overlap: perto = [0,3] km, medio = (3,10] km, longe = (10,∞) km.
var DistanciaDescriptions = map[string]string{
	DistanceNear:   "MUITO PERTO - MÁXIMO 3km de distância. Deve ser possível ir a pé ou em menos de 10 minutos de carro. REJEITE qualquer lugar acima de 3km.",
	DistanceMedium: "DISTÂNCIA MÉDIA - entre 3km e 10km. NÃO inclua lugares muito perto (menos de 3km) NEM muito longe (mais de 10km).",
	DistanceFar:    "MAIS LONGE - acima de 10km, para explorar bairros diferentes e novos lugares da cidade.",
}

// PeriodDescription renders the period filter as prompt text.
func PeriodDescription(period string) string {
	if period == PeriodDay {
		return "durante o dia"
	}
	return "à noite"
}

// Place is one normalized venue recommendation. Instances are built once by
// the response normalizer and never mutated afterwards.
type Place struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Address           string   `json:"address"`
	MapURL            string   `json:"mapUrl"`
	Budget            string   `json:"budget"`
	Type              string   `json:"type"`
	Period            string   `json:"period"`
	Tags              []string `json:"tags"`
	ImageURL          string   `json:"imageUrl"`
	Rating            float64  `json:"rating"`
	SuggestedActivity string   `json:"suggestedActivity"`
	OpeningHours      string   `json:"openingHours"`
	SpecialTip        string   `json:"specialTip"`
	AIRecommended     bool     `json:"aiRecommended"`
	TemEstacionamento bool     `json:"temEstacionamento"`
	Acessivel         bool     `json:"acessivel"`
	CuisineType       *string  `json:"cuisineType"`
	DistanceKm        *float64 `json:"distanceKm"`
	PriceRange        *string  `json:"priceRange"`
}

// RecommendationsResponse is the success envelope of one search.
// TotalFound always equals len(Places).
type RecommendationsResponse struct {
	Places     []Place `json:"places"`
	TotalFound int     `json:"totalFound"`
	Source     string  `json:"source"`
}
