package ai

import "testing"

func TestParseResponse_Valid(t *testing.T) {
	raw := `{
		"response": "Le ayudamos con su cita.",
		"requires_human_attention": false,
		"follow_up_needed": true,
		"estimated_resolution_time": "2 horas",
		"additional_resources": ["https://salud.example/citas"]
	}`
	resp, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resp.Text == "" || resp.RequiresHumanAttention {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestParseResponse_Invalid(t *testing.T) {
	for _, raw := range []string{
		"no soy json",
		`{"requires_human_attention": true}`,
	} {
		if _, err := parseResponse(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseResponse_NilResourcesBecomeEmpty(t *testing.T) {
	raw := `{"response":"ok","requires_human_attention":true,"follow_up_needed":false,"estimated_resolution_time":"24 horas"}`
	resp, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resp.AdditionalResources == nil {
		t.Fatalf("resources must never be nil")
	}
}

func TestFallbackResponse(t *testing.T) {
	resp := FallbackResponse()
	if !resp.RequiresHumanAttention || !resp.FollowUpNeeded {
		t.Fatalf("fallback must escalate: %+v", resp)
	}
	if resp.EstimatedResolutionTime != "24 horas" {
		t.Fatalf("unexpected resolution time: %q", resp.EstimatedResolutionTime)
	}
	if len(resp.AdditionalResources) != 0 || resp.AdditionalResources == nil {
		t.Fatalf("fallback resources must be empty, non-nil")
	}
}
