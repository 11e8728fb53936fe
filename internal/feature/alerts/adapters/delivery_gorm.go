// Package adapters provides the store implementations of the alerts feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"stock_notifier/internal/feature/alerts/domain/entity"
	"stock_notifier/internal/feature/alerts/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deliveryGorm persists the ledger of one watch. Rows of other watches in the
// same table are never read.
type deliveryGorm struct {
	db      *gorm.DB
	watchID string
}

var _ usecase.DeliveryStore = (*deliveryGorm)(nil)

// NewDeliveryStore returns a ledger store scoped to watchID.
func NewDeliveryStore(db *gorm.DB, watchID string) *deliveryGorm {
	return &deliveryGorm{db: db, watchID: watchID}
}

type DeliveryModel struct {
	ID          uint      `gorm:"primaryKey"`
	WatchID     string    `gorm:"size:36;not null;uniqueIndex:delivery_watch_sym_type,priority:1"`
	Symbol      string    `gorm:"size:32;not null;uniqueIndex:delivery_watch_sym_type,priority:2"`
	AlertType   string    `gorm:"size:32;not null;uniqueIndex:delivery_watch_sym_type,priority:3"`
	DeliveredAt time.Time `gorm:"not null"`
}

func (DeliveryModel) TableName() string {
	return "alert_deliveries"
}

// Save is idempotent: recording the same pair twice keeps the first row.
func (r *deliveryGorm) Save(ctx context.Context, symbol string, typ entity.AlertType) error {
	m := DeliveryModel{WatchID: r.watchID, Symbol: symbol, AlertType: string(typ), DeliveredAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "watch_id"}, {Name: "symbol"}, {Name: "alert_type"}},
		DoNothing: true,
	}).Create(&m).Error
}

func (r *deliveryGorm) ExistsByType(ctx context.Context, symbol string, typ entity.AlertType) (bool, error) {
	var m DeliveryModel
	err := r.db.WithContext(ctx).
		Where("watch_id = ? AND symbol = ? AND alert_type = ?", r.watchID, symbol, string(typ)).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
