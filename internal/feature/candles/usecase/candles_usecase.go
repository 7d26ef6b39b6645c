// Package usecase はローソク足データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"stock_dashboard/internal/feature/candles/domain/entity"
	"stock_dashboard/internal/shared/apperr"
	"stock_dashboard/internal/shared/chart"
)

const (
	// DefaultInterval はローソク足クエリのデフォルト時間間隔です。
	DefaultInterval = "1day"
	// DateLayout は日付入力の形式です。
	DateLayout = "2006-01-02"

	// PriceFigureTitle は価格チャートのタイトルです。
	PriceFigureTitle = "Stock Price: Closing and Opening Prices vs Date"
)

// DefaultStart は期間開始日が未指定のときの既定値です。
var DefaultStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// MarketRepository は期間指定で株価データを取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error)
}

// CandlesUsecase は価格履歴の取得とチャート生成のユースケースです。
type CandlesUsecase struct {
	market MarketRepository
	now    func() time.Time
}

// NewCandlesUsecase はCandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(market MarketRepository) *CandlesUsecase {
	return &CandlesUsecase{market: market, now: time.Now}
}

// NormalizeSymbol は銘柄コードの前後の空白を除去し大文字に揃えます。
func NormalizeSymbol(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Today はnowの日付部分をUTCの0時として返します。
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDateRange は"YYYY-MM-DD"形式の期間文字列を解釈します。
// 空文字の開始日は2020-01-01、空文字の終了日はnowの日付になります。
func ParseDateRange(startRaw, endRaw string, now time.Time) (time.Time, time.Time, error) {
	start := DefaultStart
	end := Today(now)

	if s := strings.TrimSpace(startRaw); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q", apperr.ErrInvalidArgument, s)
		}
		start = t
	}
	if s := strings.TrimSpace(endRaw); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q", apperr.ErrInvalidArgument, s)
		}
		end = t
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s is after end %s",
			apperr.ErrInvalidArgument, start.Format(DateLayout), end.Format(DateLayout))
	}
	return start, end, nil
}

// GetHistory は指定期間の日足を古い順で返します。
// start/endがゼロ値の場合は既定の期間を使います。
func (cu *CandlesUsecase) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", apperr.ErrInvalidArgument)
	}
	if start.IsZero() {
		start = DefaultStart
	}
	if end.IsZero() {
		end = Today(cu.now())
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s",
			apperr.ErrInvalidArgument, start.Format(DateLayout), end.Format(DateLayout))
	}

	cs, err := cu.market.GetTimeSeries(ctx, symbol, DefaultInterval, start, end)
	if err != nil {
		return nil, fmt.Errorf("get history %s: %w", symbol, err)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: no price history for %s", apperr.ErrDataUnavailable, symbol)
	}

	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Time.Before(cs[j].Time) })
	return cs, nil
}

// PriceFigure は終値と始値の折れ線チャートを組み立てます。
func PriceFigure(symbol string, cs []entity.Candle) chart.Figure {
	closes := make([]chart.Point, 0, len(cs))
	opens := make([]chart.Point, 0, len(cs))
	for _, c := range cs {
		closes = append(closes, chart.Point{Date: c.Time, Value: c.Close})
		opens = append(opens, chart.Point{Date: c.Time, Value: c.Open})
	}

	return chart.Figure{
		Title:      PriceFigureTitle,
		XAxisTitle: "Date",
		YAxisTitle: "Price",
		Traces: []chart.Trace{
			{Name: "Close", Points: closes},
			{Name: "Open", Points: opens},
		},
	}
}
