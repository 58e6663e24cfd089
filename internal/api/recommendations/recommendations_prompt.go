package recommendations

import (
	"fmt"
	"strings"

	"github.com/encontros-app/date-spots-api/internal/types"
)

// systemPrompt pins the completion model to JSON output. Sent as the system
// role on every request.
const systemPrompt = "Você é um assistente especializado em recomendações de lugares românticos. Sempre responda em JSON válido."

// targetCount is how many candidates the model is asked for. The prompt
// explicitly allows fewer when fewer satisfy every constraint.
const targetCount = 5

// PromptMode selects how constraints are phrased. Strict mode states every
// active filter as a hard rule and appends a per-constraint validation
// checklist; soft mode phrases the same filters as preferences and omits
// the checklist.
type PromptMode int

const (
	PromptStrict PromptMode = iota
	PromptSoft
)

// ParsePromptMode maps the config value to a PromptMode, defaulting to strict.
func ParsePromptMode(s string) PromptMode {
	if strings.EqualFold(s, "soft") {
		return PromptSoft
	}
	return PromptStrict
}

// buildRecommendationsPrompt renders the validated filters into the single
// instructional text block sent as the user message. It is a pure function:
// the same filters always produce the same prompt.
func buildRecommendationsPrompt(f types.PlaceFilters, mode PromptMode) string {
	lat, lon := *f.Latitude, *f.Longitude

	budgetDesc, ok := types.BudgetDescriptions[f.Budget]
	if !ok {
		budgetDesc = "variado"
	}
	typeDesc, ok := types.TypeDescriptions[f.Type]
	if !ok {
		typeDesc = "variado"
	}
	periodDesc := types.PeriodDescription(f.Period)

	var b strings.Builder
	b.WriteString("Você é um especialista em recomendações para casais em São Luís, Maranhão, Brasil.\n")

	if mode == PromptStrict {
		b.WriteString("\nREGRAS CRÍTICAS - LEIA COM ATENÇÃO\n")
	} else {
		b.WriteString("\nPREFERÊNCIAS DO USUÁRIO\n")
	}

	writeDistanceRule(&b, f, lat, lon, mode)
	writeBudgetRule(&b, f, mode)

	fmt.Fprintf(&b, "\nMISSÃO: Encontre %d lugares REAIS em São Luís/MA que respeitem as regras acima.\n", targetCount)
	b.WriteString("Se não encontrar lugares suficientes que atendam a todas as regras, retorne menos lugares. NUNCA invente lugares para completar a lista.\n")

	b.WriteString("\nCidade: São Luís, Maranhão, Brasil\n")
	fmt.Fprintf(&b, "ORÇAMENTO: %s\n", budgetDesc)
	fmt.Fprintf(&b, "TIPO: %s\n", typeDesc)
	if f.Type == "gastronomia" {
		if f.Budget == types.BudgetLow {
			b.WriteString("PARA OPÇÃO BARATA - INCLUA: churrasquinhos famosos, tapiocarias bem avaliadas, lanchonetes populares, espetinhos de rua, food trucks conhecidos, lugares simples mas gostosos para casais.\n")
		} else {
			b.WriteString("DIVERSIDADE GASTRONÔMICA: varie os tipos de culinária (japonesa, italiana, regional, frutos do mar, etc).\n")
		}
	}
	fmt.Fprintf(&b, "PERÍODO: %s\n", periodDesc)

	hard := "DEVE"
	if mode == PromptSoft {
		hard = "de preferência deve"
	}
	if desc, ok := types.AmbienteDescriptions[f.Ambiente]; ok {
		fmt.Fprintf(&b, "AMBIENTE: o lugar %s ter ambiente %s\n", hard, desc)
	}
	if f.WantsParking() {
		fmt.Fprintf(&b, "ESTACIONAMENTO: o lugar %s ter estacionamento próprio ou fácil acesso a estacionamento\n", hard)
	}
	if f.WantsAccessible() {
		fmt.Fprintf(&b, "ACESSIBILIDADE: o lugar %s ser acessível para cadeirantes (rampas, banheiros adaptados, etc)\n", hard)
	}

	b.WriteString(`
PARA CADA LUGAR:
- Nome EXATO e COMPLETO do estabelecimento
- Endereço COMPLETO: "Rua/Av. Nome, Número - Bairro, São Luís - MA, CEP"
- priceRange: faixa de preço real do estabelecimento ("$", "$$" ou "$$$")
- distanceKm: distância aproximada em km da localização do usuário
- cuisineType: tipo de culinária (ex: "Japonesa", "Italiana", "Frutos do Mar", "Brasileira")
- Descrição romântica (2-3 frases)
- Avaliação (0-5)
- Horário de funcionamento
- Sugestão de atividade romântica
- Dica especial

RETORNE JSON NESTE FORMATO EXATO:
{
  "recommendations": [
    {
      "name": "Nome Exato do Estabelecimento",
      "address": "Rua/Av. Nome Completo, Número - Bairro, São Luís - MA",
      "neighborhood": "Nome do Bairro",
      "priceRange": "$$",
      "distanceKm": 3.5,
      "cuisineType": "Japonesa",
      "description": "Por que é perfeito para um encontro romântico",
      "rating": 4.5,
      "openingHours": "Seg-Sex: 18h-23h, Sáb-Dom: 12h-23h",
      "romanticActivity": "Sugestão de atividade romântica",
      "specialTip": "Dica especial para o casal",
      "temEstacionamento": true,
      "acessivel": false
    }
  ]
}
`)

	if mode == PromptStrict {
		writeValidationChecklist(&b, f, periodDesc)
	}

	b.WriteString(`
IMPORTANTE:
- BUSQUE informações REAIS na web. NÃO invente.
- Retorne APENAS JSON válido.
- NÃO inclua referências numéricas entre colchetes.
- Se não encontrar ` + fmt.Sprint(targetCount) + ` lugares que passem na validação, retorne menos lugares.`)

	return b.String()
}

func writeDistanceRule(b *strings.Builder, f types.PlaceFilters, lat, lon float64, mode PromptMode) {
	b.WriteString("\nRESTRIÇÃO DE DISTÂNCIA")
	if mode == PromptStrict && f.Distancia != "" {
		b.WriteString(" (OBRIGATÓRIA)")
	}
	b.WriteString(":\n")
	fmt.Fprintf(b, "- Localização do usuário: Latitude %v, Longitude %v\n", lat, lon)

	switch f.Distancia {
	case types.DistanceNear:
		b.WriteString("- O usuário quer lugares MUITO PERTO, a NO MÁXIMO 3 QUILÔMETROS de distância em linha reta.\n")
		b.WriteString("- CALCULE a distância de cada lugar a partir das coordenadas acima antes de incluir.\n")
		b.WriteString("- Se a distância for maior que 3km, NÃO INCLUA O LUGAR. Lugares a 5km, 8km, 10km = REJEITADOS.\n")
		b.WriteString("- Priorize o MESMO BAIRRO ou bairros IMEDIATAMENTE vizinhos.\n")
	case types.DistanceMedium:
		b.WriteString("- O usuário quer lugares a DISTÂNCIA MÉDIA, entre 3km e 10km em linha reta.\n")
		b.WriteString("- CALCULE a distância de cada lugar a partir das coordenadas acima antes de incluir.\n")
		b.WriteString("- NÃO inclua lugares muito perto (menos de 3km) nem muito longe (mais de 10km).\n")
	case types.DistanceFar:
		b.WriteString("- O usuário quer EXPLORAR lugares mais distantes, acima de 10km em linha reta.\n")
		b.WriteString("- CALCULE a distância de cada lugar a partir das coordenadas acima antes de incluir.\n")
	default:
		b.WriteString("- Priorize lugares relativamente próximos.\n")
	}
}

func writeBudgetRule(b *strings.Builder, f types.PlaceFilters, mode PromptMode) {
	b.WriteString("\nRESTRIÇÃO DE ORÇAMENTO")
	if mode == PromptStrict {
		b.WriteString(" (OBRIGATÓRIA)")
	}
	b.WriteString(":\n")

	switch f.Budget {
	case types.BudgetLow:
		b.WriteString("- O usuário quer opções BARATAS/POPULARES (máximo R$30-50 por pessoa).\n")
		b.WriteString("- TIPOS DE LUGARES ESPERADOS: churrasquinhos, tapiocarias, lanchonetes de bairro, espetinhos, food trucks, açaiterias, pastelarias, hamburguerias simples.\n")
		b.WriteString("- NÃO são restaurantes sofisticados, bistrôs ou lugares caros. Se o lugar tem preço médio acima de R$50, NÃO INCLUA.\n")
	case types.BudgetMid:
		b.WriteString("- O usuário quer opções de PREÇO MODERADO (R$50-150 por pessoa).\n")
		b.WriteString("- TIPOS DE LUGARES: restaurantes casuais, pizzarias, sushi casual, hamburguerias gourmet, bares com boa comida.\n")
		b.WriteString("- NÃO inclua churrasquinhos de rua (muito barato) nem fine dining (muito caro).\n")
	case types.BudgetHigh:
		b.WriteString("- O usuário quer opções PREMIUM/CARAS (acima de R$150 por pessoa).\n")
		b.WriteString("- APENAS: restaurantes fine dining, alta gastronomia, experiências exclusivas.\n")
		b.WriteString("- NÃO inclua lugares simples ou populares.\n")
	}
}

func writeValidationChecklist(b *strings.Builder, f types.PlaceFilters, periodDesc string) {
	b.WriteString("\nVALIDAÇÃO FINAL - CADA LUGAR DEVE PASSAR NESTES TESTES:\n")
	switch f.Distancia {
	case types.DistanceNear:
		b.WriteString("- distanceKm <= 3.0? Se distanceKm > 3.0, REJEITE o lugar.\n")
	case types.DistanceMedium:
		b.WriteString("- 3.0 <= distanceKm <= 10.0? Se não, REJEITE.\n")
	case types.DistanceFar:
		b.WriteString("- distanceKm > 10.0? Se não, REJEITE.\n")
	}
	fmt.Fprintf(b, "- priceRange == %q? Se não, REJEITE.\n", f.Budget)
	fmt.Fprintf(b, "- Funciona %s? Se não, REJEITE.\n", periodDesc)
	if desc, ok := types.AmbienteDescriptions[f.Ambiente]; ok {
		fmt.Fprintf(b, "- O ambiente é %s? Se não, REJEITE.\n", desc)
	}
	if f.WantsParking() {
		b.WriteString("- Tem estacionamento? Se não, REJEITE.\n")
	}
	if f.WantsAccessible() {
		b.WriteString("- É acessível para cadeirantes? Se não, REJEITE.\n")
	}
	b.WriteString("LUGARES REJEITADOS = NÃO INCLUA NA LISTA. BUSQUE OUTRO QUE PASSE NA VALIDAÇÃO.\n")
}
