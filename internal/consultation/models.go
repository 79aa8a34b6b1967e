package consultation

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderAI       SenderType = "ai"
	SenderAgent    SenderType = "agent"
)

type Customer struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     *string   `gorm:"type:varchar(32)" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// Category is static reference data, seeded once at startup and read-only
// to the intake pipeline.
type Category struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"type:varchar(255)" json:"description,omitempty"`
	PriorityLevel int       `gorm:"not null" json:"priority_level"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Category) TableName() string { return "consultation_categories" }

type Consultation struct {
	ID                  uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID          uint64    `gorm:"index;not null" json:"customer_id"`
	CategoryID          uint64    `gorm:"index;not null" json:"category_id"`
	Subject             string    `gorm:"type:varchar(255);not null" json:"subject"`
	Message             string    `gorm:"type:text;not null" json:"message"`
	AIResponse          string    `gorm:"type:text" json:"ai_response,omitempty"`
	Status              Status    `gorm:"type:varchar(16);index;not null" json:"status"`
	PriorityLevel       int       `gorm:"not null" json:"priority_level"`
	SentimentScore      *float64  `json:"sentiment_score,omitempty"`
	ConfidenceScore     *float64  `json:"confidence_score,omitempty"`
	ResponseTimeSeconds *int      `json:"response_time_seconds,omitempty"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Consultation) TableName() string { return "consultations" }

type Interaction struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ConsultationID uint64     `gorm:"index;not null" json:"consultation_id"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	SenderType     SenderType `gorm:"type:varchar(16);not null" json:"sender_type"`
	SenderID       *uint64    `json:"sender_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Interaction) TableName() string { return "consultation_interactions" }

type Agent struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Agent) TableName() string { return "agents" }

// ListedConsultation is a consultation row joined with its customer and
// category context for the dashboard listing.
type ListedConsultation struct {
	ID               uint64    `json:"id"`
	CustomerID       uint64    `json:"customer_id"`
	CategoryID       uint64    `json:"category_id"`
	Subject          string    `json:"subject"`
	Message          string    `json:"message"`
	AIResponse       string    `json:"ai_response,omitempty"`
	Status           Status    `json:"status"`
	PriorityLevel    int       `json:"priority_level"`
	SentimentScore   *float64  `json:"sentiment_score,omitempty"`
	ConfidenceScore  *float64  `json:"confidence_score,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CategoryName     string    `json:"category_name"`
	CategoryPriority int       `json:"category_priority"`
}
