package services

import (
	"context"
	"time"

	"housing-prediction-api/models"

	"gorm.io/gorm"
)

// HistoryStore keeps served predictions.
type HistoryStore interface {
	Append(ctx context.Context, rec *models.PredictionRecord) error
	// List returns up to limit records older than before (all when nil),
	// newest first.
	List(ctx context.Context, limit int, before *time.Time) ([]models.PredictionRecord, error)
}

type GormHistoryStore struct {
	db *gorm.DB
}

func NewGormHistoryStore(db *gorm.DB) *GormHistoryStore {
	return &GormHistoryStore{db: db}
}

func (s *GormHistoryStore) Migrate() error {
	return s.db.AutoMigrate(&models.PredictionRecord{})
}

func (s *GormHistoryStore) Append(ctx context.Context, rec *models.PredictionRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *GormHistoryStore) List(ctx context.Context, limit int, before *time.Time) ([]models.PredictionRecord, error) {
	query := s.db.WithContext(ctx).
		Model(&models.PredictionRecord{}).
		Order("ts DESC").
		Limit(limit)
	if before != nil {
		query = query.Where("ts < ?", *before)
	}

	var rows []models.PredictionRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
