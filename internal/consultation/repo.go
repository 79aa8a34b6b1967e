package consultation

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// FindOrCreateCustomer inserts a customer keyed on the unique email, or
// returns the existing row untouched. The insert-if-absent runs as a single
// statement so two concurrent first-time submissions from the same email
// cannot both insert; the loser of the race just reads the winner's row.
func (r *Repo) FindOrCreateCustomer(ctx context.Context, name, email string, phone *string) (*Customer, error) {
	cust := Customer{Name: name, Email: email, Phone: phone}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cust)
	if res.Error != nil {
		return nil, fmt.Errorf("upsert customer: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &cust, nil
	}

	var existing Customer
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&existing).Error; err != nil {
		return nil, fmt.Errorf("fetch customer after upsert: %w", err)
	}
	return &existing, nil
}

// RecordConsultation writes the consultation row plus its two initial
// interactions (customer message, then ai reply) in one transaction, so a
// consultation can never exist without its interaction trail.
func (r *Repo) RecordConsultation(ctx context.Context, cons *Consultation, customerMessage, aiReply string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cons).Error; err != nil {
			return fmt.Errorf("insert consultation: %w", err)
		}
		if err := tx.Create(&Interaction{
			ConsultationID: cons.ID,
			Message:        customerMessage,
			SenderType:     SenderCustomer,
		}).Error; err != nil {
			return fmt.Errorf("insert customer interaction: %w", err)
		}
		if err := tx.Create(&Interaction{
			ConsultationID: cons.ID,
			Message:        aiReply,
			SenderType:     SenderAI,
		}).Error; err != nil {
			return fmt.Errorf("insert ai interaction: %w", err)
		}
		return nil
	})
}

func (r *Repo) GetConsultation(ctx context.Context, id uint64) (*Consultation, error) {
	var cons Consultation
	if err := r.db.WithContext(ctx).First(&cons, id).Error; err != nil {
		return nil, err
	}
	return &cons, nil
}

// ListConsultations returns consultations newest first, joined with their
// customer and category context. status filters by exact match when set.
func (r *Repo) ListConsultations(ctx context.Context, limit, offset int, status string) ([]ListedConsultation, error) {
	q := r.db.WithContext(ctx).
		Table("consultations AS c").
		Select(`c.*,
			cu.name AS customer_name,
			cu.email AS customer_email,
			cat.name AS category_name,
			cat.priority_level AS category_priority`).
		Joins("JOIN customers cu ON c.customer_id = cu.id").
		Joins("JOIN consultation_categories cat ON c.category_id = cat.id").
		Order("c.created_at DESC").
		Limit(limit).
		Offset(offset)

	if status != "" {
		q = q.Where("c.status = ?", status)
	}

	var rows []ListedConsultation
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListInteractions returns the interaction log in creation order.
func (r *Repo) ListInteractions(ctx context.Context, consultationID uint64) ([]Interaction, error) {
	var rows []Interaction
	if err := r.db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id uint64, status Status) error {
	res := r.db.WithContext(ctx).Model(&Consultation{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClaimEscalated moves a pending consultation to in_progress. Returns false
// when the row was already claimed or is no longer pending.
func (r *Repo) ClaimEscalated(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Consultation{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", StatusInProgress)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repo) AppendInteraction(ctx context.Context, in *Interaction) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *Repo) GetAgentByEmail(ctx context.Context, email string) (*Agent, error) {
	var agent Agent
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *Repo) CreateAgentIfAbsent(ctx context.Context, agent *Agent) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(agent).Error
}

// ---- analytics queries ----

type OverallStats struct {
	TotalConsultations  int64   `json:"total_consultations"`
	AvgSentiment        float64 `json:"avg_sentiment"`
	ResolutionRate      float64 `json:"resolution_rate"`
	UrgentConsultations int64   `json:"urgent_consultations"`
}

type CategoryStat struct {
	Name           string  `json:"name"`
	Count          int64   `json:"count"`
	AvgSentiment   float64 `json:"avg_sentiment"`
	ResolutionRate float64 `json:"resolution_rate"`
}

type DailyTrend struct {
	Date          string  `json:"date"`
	Consultations int64   `json:"consultations"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	UrgentCount   int64   `json:"urgent_count"`
}

func (r *Repo) OverallStats(ctx context.Context, since time.Time) (*OverallStats, error) {
	var stats OverallStats
	err := r.db.WithContext(ctx).
		Table("consultations").
		Select(`COUNT(*) AS total_consultations,
			COALESCE(AVG(sentiment_score), 0) AS avg_sentiment,
			COALESCE(AVG(CASE WHEN status = 'resolved' THEN 1.0 ELSE 0.0 END), 0) AS resolution_rate,
			COALESCE(SUM(CASE WHEN priority_level = 4 THEN 1 ELSE 0 END), 0) AS urgent_consultations`).
		Where("created_at >= ?", since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repo) CategoryStats(ctx context.Context, since time.Time) ([]CategoryStat, error) {
	var rows []CategoryStat
	err := r.db.WithContext(ctx).
		Table("consultation_categories AS cat").
		Select(`cat.name,
			COUNT(c.id) AS count,
			COALESCE(AVG(c.sentiment_score), 0) AS avg_sentiment,
			COALESCE(AVG(CASE WHEN c.status = 'resolved' THEN 1.0 ELSE 0.0 END), 0) AS resolution_rate`).
		Joins("LEFT JOIN consultations c ON cat.id = c.category_id AND c.created_at >= ?", since).
		Group("cat.id, cat.name").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) DailyTrends(ctx context.Context, since time.Time) ([]DailyTrend, error) {
	var rows []DailyTrend
	err := r.db.WithContext(ctx).
		Table("consultations").
		Select(`DATE(created_at) AS date,
			COUNT(*) AS consultations,
			COALESCE(AVG(sentiment_score), 0) AS avg_sentiment,
			COALESCE(SUM(CASE WHEN priority_level = 4 THEN 1 ELSE 0 END), 0) AS urgent_count`).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RecentConsultations returns the newest consultations since the cutoff,
// capped at limit, for AI trend analysis.
func (r *Repo) RecentConsultations(ctx context.Context, since time.Time, limit int) ([]Consultation, error) {
	var rows []Consultation
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
