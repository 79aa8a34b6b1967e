package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
)

// TrendConsultation is the slice of a consultation fed into trend analysis.
type TrendConsultation struct {
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	PriorityLevel  int       `json:"priority_level"`
	CreatedAt      time.Time `json:"created_at"`
}

type TrendAnalyzer interface {
	AnalyzeTrends(ctx context.Context, consultations []TrendConsultation) string
}

const trendsFallbackText = "No se pudo generar el análisis de tendencias en este momento."

const trendsSystemPrompt = `Eres un analista de datos especializado en servicios médicos. Analiza las tendencias en las consultas de clientes y proporciona insights útiles.`

// AnalyzeTrends summarizes recent consultations as free-form text. This is
// the only unstructured call; failure yields a fixed notice instead of an
// error so the analytics view always renders.
func (c *Client) AnalyzeTrends(ctx context.Context, consultations []TrendConsultation) string {
	payload, err := json.MarshalIndent(consultations, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("trend payload marshal failed")
		return trendsFallbackText
	}

	prompt := fmt.Sprintf(`Analiza estas consultas médicas y proporciona insights sobre tendencias, patrones y recomendaciones:

%s

Incluye:
1. Tendencias principales
2. Categorías más frecuentes
3. Patrones de sentimiento
4. Recomendaciones para mejorar el servicio`, payload)

	text, err := c.complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(trendsSystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("trend analysis call failed")
		return trendsFallbackText
	}
	return text
}
