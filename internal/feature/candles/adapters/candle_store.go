// Package adapters はcandlesフィーチャーの永続化アダプターを提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_dashboard/internal/feature/candles/domain/entity"
	"stock_dashboard/internal/feature/candles/usecase"
)

// candleStore はgormで日足を保存・検索します。sqliteとpostgresの両方で動作します。
type candleStore struct {
	db *gorm.DB
}

var (
	_ usecase.CandleStore      = (*candleStore)(nil)
	_ usecase.MarketRepository = (*candleStore)(nil)
)

// NewCandleStore はcandleStoreの新しいインスタンスを生成します。
func NewCandleStore(db *gorm.DB) *candleStore {
	return &candleStore{db: db}
}

// CandleModel はcandlesテーブルの行です。
type CandleModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:candle_sym_int_time,priority:1"`
	Interval string    `gorm:"size:16;not null;uniqueIndex:candle_sym_int_time,priority:2"`
	Time     time.Time `gorm:"not null;uniqueIndex:candle_sym_int_time,priority:3"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:   e.Symbol,
		Interval: e.Interval,
		Time:     e.Time.UTC(),
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		Volume:   e.Volume,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Symbol:   m.Symbol,
		Interval: m.Interval,
		Time:     m.Time.UTC(),
		Open:     m.Open,
		High:     m.High,
		Low:      m.Low,
		Close:    m.Close,
		Volume:   m.Volume,
	}
}

// UpsertBatch は(symbol, interval, time)が重複する行を上書きしながら一括挿入します。
func (r *candleStore) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	ms := make([]CandleModel, 0, len(candles))
	for _, e := range candles {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// GetTimeSeries は[start, end]の範囲の行を古い順で返します。ゼロ値の境界は無視します。
// interval/timeは予約語のため、列名はclause経由でダイアレクトごとにクォートします。
func (r *candleStore) GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error) {
	q := r.db.WithContext(ctx).
		Where(&CandleModel{Symbol: symbol, Interval: interval})
	if !start.IsZero() {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "time"}, Value: start.UTC()})
	}
	if !end.IsZero() {
		q = q.Where(clause.Lte{Column: clause.Column{Name: "time"}, Value: end.UTC()})
	}

	var rows []CandleModel
	if err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}}).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Candle, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
