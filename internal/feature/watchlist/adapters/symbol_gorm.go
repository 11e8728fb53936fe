// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"stock_notifier/internal/feature/watchlist/domain/entity"
	"stock_notifier/internal/feature/watchlist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Upsert は銘柄を追加します。既に存在する場合は名前と並び順を更新し、再度アクティブにします。
func (r *symbolGorm) Upsert(ctx context.Context, s entity.Symbol) error {
	s.IsActive = true
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sort_key", "is_active", "updated_at"}),
	}).Create(&s).Error
}

// Deactivate は銘柄を監視対象から外します。見つからない場合は false を返します。
func (r *symbolGorm) Deactivate(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("code = ? AND is_active = ?", code, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
