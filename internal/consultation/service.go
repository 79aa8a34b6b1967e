package consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/saludplus/consultas-backend/internal/ai"
	"github.com/saludplus/consultas-backend/internal/common"
)

// ErrInvalidSubmission marks client errors caught before any gateway call.
var ErrInvalidSubmission = errors.New("invalid submission")

// Escalation announces a consultation that needs human follow-up.
type Escalation struct {
	EventID        string `json:"event_id"`
	ConsultationID uint64 `json:"consultation_id"`
	Category       string `json:"category"`
	Priority       int    `json:"priority"`
}

// EscalationPublisher hands escalations to the staff notification queue.
type EscalationPublisher interface {
	PublishEscalation(ctx context.Context, ev Escalation) error
}

type SubmitRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Subject       string
	Message       string
}

func (r SubmitRequest) validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidSubmission)
	}
	if strings.TrimSpace(r.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidSubmission)
	}
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidSubmission)
	}
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidSubmission)
	}
	return nil
}

type SubmitResult struct {
	Consultation   *Consultation
	Classification ai.Classification
	Response       ai.Response
}

// Service runs the intake pipeline. The two AI gateways are best-effort and
// never abort a submission; only storage failures do.
type Service struct {
	repo       *Repo
	classifier ai.Classifier
	responder  ai.Responder
	escalation EscalationPublisher // optional
}

func NewService(repo *Repo, classifier ai.Classifier, responder ai.Responder, escalation EscalationPublisher) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
		responder:  responder,
		escalation: escalation,
	}
}

// Submit runs the fixed intake sequence: find-or-create customer, classify,
// map category, generate reply, record. No step is skipped or retried.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	customer, err := s.repo.FindOrCreateCustomer(ctx, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	cls := s.classifier.Classify(ctx, req.Subject, req.Message)
	categoryID := CategoryID(cls.Category)

	resp := s.responder.GenerateResponse(ctx, req.Subject, req.Message, cls.Category)

	status := StatusResolved
	if resp.RequiresHumanAttention {
		status = StatusPending
	}

	sentiment := cls.Sentiment
	confidence := cls.Confidence
	cons := &Consultation{
		CustomerID:      customer.ID,
		CategoryID:      categoryID,
		Subject:         req.Subject,
		Message:         req.Message,
		AIResponse:      resp.Text,
		Status:          status,
		PriorityLevel:   cls.Priority,
		SentimentScore:  &sentiment,
		ConfidenceScore: &confidence,
	}

	if err := s.repo.RecordConsultation(ctx, cons, req.Message, resp.Text); err != nil {
		return nil, err
	}

	if status == StatusPending && s.escalation != nil {
		eventID, _ := common.NewULID()
		ev := Escalation{
			EventID:        eventID,
			ConsultationID: cons.ID,
			Category:       cls.Category,
			Priority:       cls.Priority,
		}
		// Notification is supplementary; a queue outage must not fail the
		// submission that was already recorded.
		if err := s.escalation.PublishEscalation(ctx, ev); err != nil {
			log.Error().Err(err).
				Uint64("consultation_id", cons.ID).
				Msg("escalation publish failed")
		}
	}

	return &SubmitResult{
		Consultation:   cons,
		Classification: cls,
		Response:       resp,
	}, nil
}

func (s *Service) List(ctx context.Context, limit, offset int, status string) ([]ListedConsultation, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListConsultations(ctx, limit, offset, status)
}

func (s *Service) Interactions(ctx context.Context, consultationID uint64) ([]Interaction, error) {
	return s.repo.ListInteractions(ctx, consultationID)
}

var validAgentStatuses = map[Status]bool{
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// AgentUpdate applies a staff status change and optionally appends an agent
// reply to the interaction log.
func (s *Service) AgentUpdate(ctx context.Context, consultationID, agentID uint64, status Status, reply string) (*Consultation, error) {
	if !validAgentStatuses[status] {
		return nil, fmt.Errorf("%w: status must be one of in_progress, resolved, closed", ErrInvalidSubmission)
	}

	if err := s.repo.UpdateStatus(ctx, consultationID, status); err != nil {
		return nil, err
	}

	if strings.TrimSpace(reply) != "" {
		if err := s.repo.AppendInteraction(ctx, &Interaction{
			ConsultationID: consultationID,
			Message:        reply,
			SenderType:     SenderAgent,
			SenderID:       &agentID,
		}); err != nil {
			return nil, err
		}
	}

	return s.repo.GetConsultation(ctx, consultationID)
}
