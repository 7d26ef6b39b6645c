package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_dashboard/internal/feature/candles/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: はコネクションごとに別DBになるため1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&CandleModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedCandle creates a test candle in the database for testing.
func seedCandle(t *testing.T, db *gorm.DB, symbol, interval string, tm time.Time) {
	t.Helper()

	candle := &CandleModel{
		Symbol:   symbol,
		Interval: interval,
		Time:     tm,
		Open:     100.0,
		High:     110.0,
		Low:      90.0,
		Close:    105.0,
		Volume:   1000,
	}
	require.NoError(t, db.Create(candle).Error, "failed to seed candle")
}

func countCandles(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&CandleModel{}).Count(&count).Error)
	return count
}

func TestNewCandleStore(t *testing.T) {
	db := setupTestDB(t)

	repo := NewCandleStore(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestCandleStore_UpsertBatch(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candle := func(tm time.Time, open float64) entity.Candle {
		return entity.Candle{Symbol: "AAPL", Interval: "1day", Time: tm, Open: open, High: open + 10, Low: open - 10, Close: open + 5, Volume: 2000}
	}

	tests := []struct {
		name         string
		candles      []entity.Candle
		setupFunc    func(t *testing.T, db *gorm.DB)
		validateFunc func(t *testing.T, db *gorm.DB)
	}{
		{
			name:    "success: insert multiple candles",
			candles: []entity.Candle{candle(baseTime, 100), candle(baseTime.AddDate(0, 0, 1), 105)},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				assert.Equal(t, int64(2), countCandles(t, db), "candle count does not match")
			},
		},
		{
			name:    "success: empty slice",
			candles: []entity.Candle{},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				assert.Equal(t, int64(0), countCandles(t, db), "candle count should be 0")
			},
		},
		{
			name:    "success: upsert updates existing candle",
			candles: []entity.Candle{candle(baseTime, 200)},
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "AAPL", "1day", baseTime)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				assert.Equal(t, int64(1), countCandles(t, db), "candle count should remain 1 after upsert")

				var m CandleModel
				require.NoError(t, db.First(&m).Error)
				assert.Equal(t, 200.0, m.Open, "Open should be updated")
				assert.Equal(t, 210.0, m.High, "High should be updated")
				assert.Equal(t, 190.0, m.Low, "Low should be updated")
				assert.Equal(t, 205.0, m.Close, "Close should be updated")
				assert.Equal(t, int64(2000), m.Volume, "Volume should be updated")
			},
		},
		{
			name:    "success: upsert with mixed insert and update",
			candles: []entity.Candle{candle(baseTime, 200), candle(baseTime.AddDate(0, 0, 1), 210)},
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "AAPL", "1day", baseTime)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				assert.Equal(t, int64(2), countCandles(t, db), "candle count should be 2")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewCandleStore(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			require.NoError(t, repo.UpsertBatch(context.Background(), tt.candles))
			tt.validateFunc(t, db)
		})
	}
}

func TestCandleStore_GetTimeSeries(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		symbol       string
		start, end   time.Time
		setupFunc    func(t *testing.T, db *gorm.DB)
		validateFunc func(t *testing.T, candles []entity.Candle)
	}{
		{
			name:   "success: empty result when no matching candles",
			symbol: "NOTFOUND",
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Empty(t, candles, "should return empty slice")
			},
		},
		{
			name:   "success: filter by symbol and interval",
			symbol: "AAPL",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "AAPL", "1day", baseTime)
				seedCandle(t, db, "GOOGL", "1day", baseTime)
				seedCandle(t, db, "AAPL", "1week", baseTime)
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				require.Len(t, candles, 1)
				assert.Equal(t, "AAPL", candles[0].Symbol)
				assert.Equal(t, "1day", candles[0].Interval)
			},
		},
		{
			name:   "success: inclusive date range",
			symbol: "AAPL",
			start:  baseTime.AddDate(0, 0, 1),
			end:    baseTime.AddDate(0, 0, 3),
			setupFunc: func(t *testing.T, db *gorm.DB) {
				for i := 0; i < 5; i++ {
					seedCandle(t, db, "AAPL", "1day", baseTime.AddDate(0, 0, i))
				}
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				require.Len(t, candles, 3)
				assert.Equal(t, baseTime.AddDate(0, 0, 1).Unix(), candles[0].Time.Unix())
				assert.Equal(t, baseTime.AddDate(0, 0, 3).Unix(), candles[2].Time.Unix())
			},
		},
		{
			name:   "success: results ordered by time ascending",
			symbol: "AAPL",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "AAPL", "1day", baseTime)
				seedCandle(t, db, "AAPL", "1day", baseTime.AddDate(0, 0, 2))
				seedCandle(t, db, "AAPL", "1day", baseTime.AddDate(0, 0, 1))
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				require.Len(t, candles, 3)
				assert.True(t, candles[0].Time.Before(candles[1].Time), "first should be older than second")
				assert.True(t, candles[1].Time.Before(candles[2].Time), "second should be older than third")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewCandleStore(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			candles, err := repo.GetTimeSeries(context.Background(), tt.symbol, "1day", tt.start, tt.end)
			require.NoError(t, err)
			tt.validateFunc(t, candles)
		})
	}
}

func TestCandleStore_GetTimeSeries_EntityMapping(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleStore(db)

	testTime := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertBatch(context.Background(), []entity.Candle{{
		Symbol:   "AAPL",
		Interval: "1day",
		Time:     testTime,
		Open:     150.5,
		High:     155.75,
		Low:      149.25,
		Close:    154.0,
		Volume:   5000000,
	}}))

	result, err := repo.GetTimeSeries(context.Background(), "AAPL", "1day", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "AAPL", result[0].Symbol, "Symbol does not match")
	assert.Equal(t, "1day", result[0].Interval, "Interval does not match")
	assert.Equal(t, testTime.Unix(), result[0].Time.Unix(), "Time does not match")
	assert.Equal(t, 150.5, result[0].Open, "Open does not match")
	assert.Equal(t, 155.75, result[0].High, "High does not match")
	assert.Equal(t, 149.25, result[0].Low, "Low does not match")
	assert.Equal(t, 154.0, result[0].Close, "Close does not match")
	assert.Equal(t, int64(5000000), result[0].Volume, "Volume does not match")
}
