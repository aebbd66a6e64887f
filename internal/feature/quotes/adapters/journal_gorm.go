package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/usecase"
)

const (
	maxErrorLen  = 1024
	maxListLimit = 500
)

type fetchJournal struct {
	db *gorm.DB
}

var _ usecase.FetchJournal = (*fetchJournal)(nil)

// NewFetchJournal はフェッチサイクルの結果を gorm で保存するジャーナルを生成します。
func NewFetchJournal(db *gorm.DB) *fetchJournal {
	return &fetchJournal{db: db}
}

// FetchRecordModel は fetch_records テーブルの行です。
type FetchRecordModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Symbol     string    `gorm:"size:32;not null;index"`
	Outcome    string    `gorm:"size:16;not null"`
	Records    int       `gorm:"not null;default:0"`
	Error      string    `gorm:"size:1024"`
	StartedAt  time.Time `gorm:"not null;index"`
	DurationMs int64     `gorm:"not null;default:0"`
}

func (FetchRecordModel) TableName() string {
	return "fetch_records"
}

func toModel(r entity.FetchRecord) FetchRecordModel {
	errText := r.Error
	if len(errText) > maxErrorLen {
		errText = errText[:maxErrorLen]
	}
	return FetchRecordModel{
		ID:         r.ID,
		Symbol:     r.Symbol,
		Outcome:    r.Outcome,
		Records:    r.Records,
		Error:      errText,
		StartedAt:  r.StartedAt.UTC(),
		DurationMs: r.Duration.Milliseconds(),
	}
}

func (m FetchRecordModel) toEntity() entity.FetchRecord {
	return entity.FetchRecord{
		ID:        m.ID,
		Symbol:    m.Symbol,
		Outcome:   m.Outcome,
		Records:   m.Records,
		Error:     m.Error,
		StartedAt: m.StartedAt,
		Duration:  time.Duration(m.DurationMs) * time.Millisecond,
	}
}

// Record は1サイクル分の結果を保存します。
func (j *fetchJournal) Record(ctx context.Context, rec entity.FetchRecord) error {
	m := toModel(rec)
	if err := j.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert fetch record: %w", err)
	}
	return nil
}

// List は新しい順に最大 limit 件の記録を返します。
func (j *fetchJournal) List(ctx context.Context, limit int) ([]entity.FetchRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	var rows []FetchRecordModel
	if err := j.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list fetch records: %w", err)
	}
	out := make([]entity.FetchRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
