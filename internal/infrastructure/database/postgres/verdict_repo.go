package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aml-screening-engine/internal/domain/screening"
)

// VerdictModel is the database model for risk verdicts
type VerdictModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID   string    `gorm:"type:varchar(64);index;not null"`
	UserID          string    `gorm:"type:varchar(64);index;not null"`
	Score           int       `gorm:"not null"`
	RiskLevel       string    `gorm:"type:varchar(20);index;not null"`
	ShouldBlock     bool      `gorm:"not null"`
	TriggeredRules  string    `gorm:"type:jsonb"`
	DeclaredCountry string    `gorm:"type:varchar(2)"`
	ObservedCountry string    `gorm:"type:varchar(2)"`
	Recommendation  string    `gorm:"type:text"`
	ScreenedAt      time.Time `gorm:"index;not null"`
	LatencyMs       int64     `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for risk verdicts
func (VerdictModel) TableName() string {
	return "risk_verdicts"
}

// VerdictRepository implements screening.VerdictRepository
type VerdictRepository struct {
	db *gorm.DB
}

// NewVerdictRepository creates a new verdict repository
func NewVerdictRepository(client *Client) *VerdictRepository {
	return &VerdictRepository{db: client.DB()}
}

// Save stores a risk verdict
func (r *VerdictRepository) Save(ctx context.Context, verdict *screening.RiskVerdict) error {
	triggered, _ := json.Marshal(verdict.TriggeredRules)

	model := &VerdictModel{
		ID:              verdict.ID,
		TransactionID:   verdict.TransactionID,
		UserID:          verdict.UserID,
		Score:           verdict.Score,
		RiskLevel:       string(verdict.Level),
		ShouldBlock:     verdict.ShouldBlock,
		TriggeredRules:  string(triggered),
		DeclaredCountry: verdict.DeclaredCountry,
		ObservedCountry: verdict.ObservedCountry,
		Recommendation:  verdict.Recommendation,
		ScreenedAt:      verdict.ScreenedAt,
		LatencyMs:       verdict.LatencyMs,
		CreatedAt:       time.Now(),
	}

	return r.db.WithContext(ctx).Create(model).Error
}

// GetByTransactionID retrieves the most recent verdict for a transaction
func (r *VerdictRepository) GetByTransactionID(ctx context.Context, transactionID string) (*screening.RiskVerdict, error) {
	var model VerdictModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("screened_at DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, screening.ErrVerdictNotFound
		}
		return nil, err
	}
	return modelToVerdict(&model), nil
}

// ListByUserID retrieves verdicts for a user, newest first
func (r *VerdictRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*screening.RiskVerdict, error) {
	var models []VerdictModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("screened_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}

	verdicts := make([]*screening.RiskVerdict, len(models))
	for i, m := range models {
		verdicts[i] = modelToVerdict(&m)
	}
	return verdicts, nil
}

func modelToVerdict(m *VerdictModel) *screening.RiskVerdict {
	var triggered []string
	json.Unmarshal([]byte(m.TriggeredRules), &triggered)

	return &screening.RiskVerdict{
		ID:              m.ID,
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		Score:           m.Score,
		Level:           screening.RiskLevel(m.RiskLevel),
		ShouldBlock:     m.ShouldBlock,
		TriggeredRules:  triggered,
		DeclaredCountry: m.DeclaredCountry,
		ObservedCountry: m.ObservedCountry,
		Recommendation:  m.Recommendation,
		ScreenedAt:      m.ScreenedAt,
		LatencyMs:       m.LatencyMs,
	}
}
