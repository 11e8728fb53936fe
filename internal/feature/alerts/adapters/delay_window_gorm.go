package adapters

import (
	"context"
	"errors"
	"time"

	"stock_notifier/internal/feature/alerts/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// delayWindowGorm persists the delay windows of one watch.
type delayWindowGorm struct {
	db      *gorm.DB
	watchID string
}

var _ usecase.DelayWindowStore = (*delayWindowGorm)(nil)

func NewDelayWindowStore(db *gorm.DB, watchID string) *delayWindowGorm {
	return &delayWindowGorm{db: db, watchID: watchID}
}

type DelayWindowModel struct {
	WatchID   string    `gorm:"primaryKey;size:36"`
	Symbol    string    `gorm:"primaryKey;size:32"`
	StartedAt time.Time `gorm:"not null"`
}

func (DelayWindowModel) TableName() string {
	return "delay_windows"
}

func (r *delayWindowGorm) Save(ctx context.Context, symbol string, startedAt time.Time) error {
	m := DelayWindowModel{WatchID: r.watchID, Symbol: symbol, StartedAt: startedAt.UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "watch_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"started_at"}),
	}).Create(&m).Error
}

func (r *delayWindowGorm) Get(ctx context.Context, symbol string) (time.Time, bool, error) {
	var m DelayWindowModel
	err := r.db.WithContext(ctx).Where("watch_id = ? AND symbol = ?", r.watchID, symbol).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return m.StartedAt, true, nil
}

func (r *delayWindowGorm) Delete(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).
		Where("watch_id = ? AND symbol = ?", r.watchID, symbol).
		Delete(&DelayWindowModel{}).Error
}
