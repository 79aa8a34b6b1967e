package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"
)

// Classification is the structured judgment of one consultation.
type Classification struct {
	Category          string   `json:"category"`
	Priority          int      `json:"priority"`
	Sentiment         float64  `json:"sentiment"`
	Confidence        float64  `json:"confidence"`
	UrgencyKeywords   []string `json:"urgency_keywords"`
	RecommendedAction string   `json:"recommended_action"`
}

// Classifier produces a classification for a consultation. Implementations
// never fail: degraded output is a fixed safe default.
type Classifier interface {
	Classify(ctx context.Context, subject, message string) Classification
}

// FallbackClassification is the safe default used whenever the external
// capability is unreachable or returns output that fails validation.
func FallbackClassification() Classification {
	return Classification{
		Category:          "informacion",
		Priority:          1,
		Sentiment:         0,
		Confidence:        0.5,
		UrgencyKeywords:   []string{},
		RecommendedAction: "Revisar manualmente",
	}
}

const classifierSystemPrompt = `Eres un especialista en clasificación de consultas médicas. Analiza cada consulta y clasifícala según:

Categorías:
- citas: Solicitudes de citas, reagendamiento, cancelaciones
- resultados: Consultas sobre resultados de exámenes o laboratorios
- emergencias: Situaciones médicas urgentes
- informacion: Preguntas generales sobre servicios
- facturacion: Temas de cobros, seguros, pagos
- medicamentos: Preguntas sobre medicinas y efectos
- seguimiento: Seguimiento post-consulta
- quejas: Quejas o sugerencias sobre el servicio

Prioridad (1-4):
1: Baja - Información general
2: Media - Citas, facturación
3: Alta - Resultados, medicamentos
4: Urgente - Emergencias médicas

Sentimiento (-1 a 1):
-1: Muy negativo, 0: Neutral, 1: Muy positivo`

var classificationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"category": map[string]any{
			"type": "string",
			"enum": []string{
				"citas", "resultados", "emergencias", "informacion",
				"facturacion", "medicamentos", "seguimiento", "quejas",
			},
		},
		"priority":   map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
		"sentiment":  map[string]any{"type": "number", "minimum": -1, "maximum": 1},
		"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"urgency_keywords": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"recommended_action": map[string]any{"type": "string"},
	},
	"required": []string{
		"category", "priority", "sentiment", "confidence",
		"urgency_keywords", "recommended_action",
	},
	"additionalProperties": false,
}

// Classify asks the model for a structured classification. The declared JSON
// schema is advisory only; the output is re-validated here and anything out
// of shape degrades to the fallback, same as an outright call failure.
func (c *Client) Classify(ctx context.Context, subject, message string) Classification {
	prompt := fmt.Sprintf(`Clasifica esta consulta médica:

Asunto: %s
Mensaje: %s

Proporciona una clasificación completa con justificación.`, subject, message)

	raw, err := c.complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifierSystemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "consultation_classification",
					Schema: classificationSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("classification call failed, using fallback")
		return FallbackClassification()
	}

	cls, err := parseClassification(raw)
	if err != nil {
		log.Warn().Err(err).Msg("classification output invalid, using fallback")
		return FallbackClassification()
	}
	return cls
}

func parseClassification(raw string) (Classification, error) {
	var cls Classification
	if err := json.Unmarshal([]byte(raw), &cls); err != nil {
		return Classification{}, fmt.Errorf("decode classification: %w", err)
	}
	if cls.Category == "" {
		return Classification{}, fmt.Errorf("classification missing category")
	}
	if cls.Priority < 1 || cls.Priority > 4 {
		return Classification{}, fmt.Errorf("classification priority out of range: %d", cls.Priority)
	}
	if cls.Sentiment < -1 || cls.Sentiment > 1 {
		return Classification{}, fmt.Errorf("classification sentiment out of range: %v", cls.Sentiment)
	}
	if cls.Confidence < 0 || cls.Confidence > 1 {
		return Classification{}, fmt.Errorf("classification confidence out of range: %v", cls.Confidence)
	}
	if cls.UrgencyKeywords == nil {
		cls.UrgencyKeywords = []string{}
	}
	return cls, nil
}
