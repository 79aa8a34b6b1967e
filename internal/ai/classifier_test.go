package ai

import "testing"

func TestParseClassification_Valid(t *testing.T) {
	raw := `{
		"category": "emergencias",
		"priority": 4,
		"sentiment": -0.5,
		"confidence": 0.9,
		"urgency_keywords": ["fiebre", "dolor"],
		"recommended_action": "Atención inmediata"
	}`
	cls, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cls.Category != "emergencias" || cls.Priority != 4 {
		t.Fatalf("unexpected classification: %+v", cls)
	}
	if len(cls.UrgencyKeywords) != 2 {
		t.Fatalf("unexpected keywords: %v", cls.UrgencyKeywords)
	}
}

func TestParseClassification_NilKeywordsBecomeEmpty(t *testing.T) {
	raw := `{"category":"citas","priority":2,"sentiment":0,"confidence":0.8,"recommended_action":"Agendar"}`
	cls, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cls.UrgencyKeywords == nil {
		t.Fatalf("keywords must never be nil")
	}
}

func TestParseClassification_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "lo siento, no puedo"},
		{"missing category", `{"priority":1,"sentiment":0,"confidence":0.5,"urgency_keywords":[],"recommended_action":"x"}`},
		{"priority too high", `{"category":"citas","priority":5,"sentiment":0,"confidence":0.5,"urgency_keywords":[],"recommended_action":"x"}`},
		{"priority too low", `{"category":"citas","priority":0,"sentiment":0,"confidence":0.5,"urgency_keywords":[],"recommended_action":"x"}`},
		{"sentiment out of range", `{"category":"citas","priority":2,"sentiment":1.5,"confidence":0.5,"urgency_keywords":[],"recommended_action":"x"}`},
		{"confidence out of range", `{"category":"citas","priority":2,"sentiment":0,"confidence":2,"urgency_keywords":[],"recommended_action":"x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseClassification(tc.raw); err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
		})
	}
}

func TestFallbackClassification(t *testing.T) {
	cls := FallbackClassification()
	if cls.Category != "informacion" || cls.Priority != 1 || cls.Sentiment != 0 || cls.Confidence != 0.5 {
		t.Fatalf("unexpected fallback: %+v", cls)
	}
	if len(cls.UrgencyKeywords) != 0 || cls.UrgencyKeywords == nil {
		t.Fatalf("fallback keywords must be empty, non-nil")
	}
}
