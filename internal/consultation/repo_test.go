package consultation

import (
	"context"
	"testing"
)

func TestFindOrCreateCustomer_Idempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	first, err := repo.FindOrCreateCustomer(ctx, "Ana", "ana@x.com", nil)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected customer id to be set")
	}

	// differing name/phone on a repeat call are ignored, no update-on-conflict
	phone := "555-0100"
	second, err := repo.FindOrCreateCustomer(ctx, "Ana María", "ana@x.com", &phone)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same customer id, got %d and %d", first.ID, second.ID)
	}
	if second.Name != "Ana" {
		t.Fatalf("existing record must be returned unchanged, got name %q", second.Name)
	}

	var count int64
	if err := db.Model(&Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 customer row, got %d", count)
	}
}

func TestRecordConsultation_WritesTrailAtomically(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	cust, err := repo.FindOrCreateCustomer(ctx, "Leo", "leo@x.com", nil)
	if err != nil {
		t.Fatalf("customer: %v", err)
	}

	sentiment := 0.1
	confidence := 0.7
	cons := &Consultation{
		CustomerID:      cust.ID,
		CategoryID:      CategoryID("citas"),
		Subject:         "Cita",
		Message:         "Necesito reagendar",
		AIResponse:      "Claro, le ayudamos a reagendar.",
		Status:          StatusResolved,
		PriorityLevel:   2,
		SentimentScore:  &sentiment,
		ConfidenceScore: &confidence,
	}
	if err := repo.RecordConsultation(ctx, cons, cons.Message, cons.AIResponse); err != nil {
		t.Fatalf("record: %v", err)
	}
	if cons.ID == 0 {
		t.Fatalf("expected consultation id to be set")
	}

	interactions, err := repo.ListInteractions(ctx, cons.ID)
	if err != nil {
		t.Fatalf("interactions: %v", err)
	}
	if len(interactions) != 2 {
		t.Fatalf("expected 2 interactions, got %d", len(interactions))
	}
	if interactions[0].SenderType != SenderCustomer || interactions[1].SenderType != SenderAI {
		t.Fatalf("unexpected sender order: %q then %q", interactions[0].SenderType, interactions[1].SenderType)
	}
}

func TestListConsultations_JoinAndFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	cust, err := repo.FindOrCreateCustomer(ctx, "Sam", "sam@x.com", nil)
	if err != nil {
		t.Fatalf("customer: %v", err)
	}

	for i, status := range []Status{StatusPending, StatusResolved, StatusResolved} {
		cons := &Consultation{
			CustomerID:    cust.ID,
			CategoryID:    CategoryID("emergencias"),
			Subject:       "Asunto",
			Message:       "Mensaje",
			Status:        status,
			PriorityLevel: 4,
		}
		if err := repo.RecordConsultation(ctx, cons, "Mensaje", "Respuesta"); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	all, err := repo.ListConsultations(ctx, 10, 0, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	if all[0].CustomerName != "Sam" || all[0].CustomerEmail != "sam@x.com" {
		t.Fatalf("customer join missing: %+v", all[0])
	}
	if all[0].CategoryName != CategoryEmergencias || all[0].CategoryPriority != 4 {
		t.Fatalf("category join missing: %+v", all[0])
	}

	resolved, err := repo.ListConsultations(ctx, 10, 0, "resolved")
	if err != nil {
		t.Fatalf("list resolved: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved rows, got %d", len(resolved))
	}

	limited, err := repo.ListConsultations(ctx, 1, 0, "")
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 row with limit=1, got %d", len(limited))
	}
}

func TestClaimEscalated(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	cust, err := repo.FindOrCreateCustomer(ctx, "Rio", "rio@x.com", nil)
	if err != nil {
		t.Fatalf("customer: %v", err)
	}
	cons := &Consultation{
		CustomerID:    cust.ID,
		CategoryID:    CategoryID("emergencias"),
		Subject:       "Urgente",
		Message:       "Dolor fuerte",
		Status:        StatusPending,
		PriorityLevel: 4,
	}
	if err := repo.RecordConsultation(ctx, cons, "Dolor fuerte", "Acuda a urgencias"); err != nil {
		t.Fatalf("record: %v", err)
	}

	claimed, err := repo.ClaimEscalated(ctx, cons.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !claimed {
		t.Fatalf("expected first claim to succeed")
	}

	again, err := repo.ClaimEscalated(ctx, cons.ID)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if again {
		t.Fatalf("expected second claim to be a no-op")
	}

	got, err := repo.GetConsultation(ctx, cons.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusInProgress {
		t.Fatalf("expected in_progress, got %q", got.Status)
	}
}
