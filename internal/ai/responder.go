package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"
)

// Response is the structured medical-context reply for a consultation.
type Response struct {
	Text                    string   `json:"response"`
	RequiresHumanAttention  bool     `json:"requires_human_attention"`
	FollowUpNeeded          bool     `json:"follow_up_needed"`
	EstimatedResolutionTime string   `json:"estimated_resolution_time"`
	AdditionalResources     []string `json:"additional_resources"`
}

// Responder generates the customer-facing reply. Implementations never fail:
// degraded output is a fixed generic acknowledgment that escalates to a human.
type Responder interface {
	GenerateResponse(ctx context.Context, subject, message, category string) Response
}

// FallbackResponse is the generic acknowledgment used whenever the external
// capability is unreachable or returns output that fails validation.
func FallbackResponse() Response {
	return Response{
		Text:                    "Gracias por contactarnos. Hemos recibido su consulta y un miembro de nuestro equipo se pondrá en contacto con usted pronto.",
		RequiresHumanAttention:  true,
		FollowUpNeeded:          true,
		EstimatedResolutionTime: "24 horas",
		AdditionalResources:     []string{},
	}
}

const responderSystemPrompt = `Eres un asistente virtual especializado en servicios médicos. Proporciona respuestas útiles, empáticas y profesionales.

IMPORTANTE:
- Nunca proporciones diagnósticos médicos específicos
- Siempre recomienda consultar con un profesional médico para temas de salud
- Sé empático y comprensivo
- Proporciona información clara y útil sobre procesos administrativos
- Para emergencias, siempre recomienda atención médica inmediata

Categoría de consulta: %s`

var responseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"response":                  map[string]any{"type": "string"},
		"requires_human_attention":  map[string]any{"type": "boolean"},
		"follow_up_needed":          map[string]any{"type": "boolean"},
		"estimated_resolution_time": map[string]any{"type": "string"},
		"additional_resources": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{
		"response", "requires_human_attention", "follow_up_needed",
		"estimated_resolution_time", "additional_resources",
	},
	"additionalProperties": false,
}

// GenerateResponse asks the model for a reply conditioned on the already
// determined category. Invalid output degrades to the fallback.
func (c *Client) GenerateResponse(ctx context.Context, subject, message, category string) Response {
	prompt := fmt.Sprintf(`Genera una respuesta profesional para esta consulta médica:

Asunto: %s
Mensaje: %s

La respuesta debe ser empática, informativa y apropiada para el contexto médico.`, subject, message)

	raw, err := c.complete(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(responderSystemPrompt, category)),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "medical_response",
					Schema: responseSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("response call failed, using fallback")
		return FallbackResponse()
	}

	resp, err := parseResponse(raw)
	if err != nil {
		log.Warn().Err(err).Msg("response output invalid, using fallback")
		return FallbackResponse()
	}
	return resp
}

func parseResponse(raw string) (Response, error) {
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	if resp.Text == "" {
		return Response{}, fmt.Errorf("response missing text")
	}
	if resp.AdditionalResources == nil {
		resp.AdditionalResources = []string{}
	}
	return resp, nil
}
