// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/usecase"
)

// SymbolModel はsymbolsテーブルの行です。
type SymbolModel struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null;default:''"`
	Market    string    `gorm:"size:100;not null;default:''"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SymbolModel) TableName() string {
	return "symbols"
}

// symbolStore はSymbolRepositoryインターフェースのgorm実装です。
type symbolStore struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolStore)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolStoreの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolStore {
	return &symbolStore{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolStore) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var rows []SymbolModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Symbol{
			Code:     m.Code,
			Name:     m.Name,
			Market:   m.Market,
			IsActive: m.IsActive,
			SortKey:  m.SortKey,
		})
	}
	return out, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolStore) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&SymbolModel{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Insert は未登録の銘柄だけを追加します。既存の行は変更しません。
func (r *symbolStore) Insert(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	ms := make([]SymbolModel, 0, len(symbols))
	for _, s := range symbols {
		ms = append(ms, SymbolModel{
			Code:     s.Code,
			Name:     s.Name,
			Market:   s.Market,
			IsActive: s.IsActive,
			SortKey:  s.SortKey,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&ms).Error
}
