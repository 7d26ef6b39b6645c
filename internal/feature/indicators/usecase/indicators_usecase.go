// Package usecase は移動平均インジケーターの計算を実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	candleentity "stock_dashboard/internal/feature/candles/domain/entity"
	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	"stock_dashboard/internal/feature/indicators/domain/entity"
	"stock_dashboard/internal/shared/apperr"
	"stock_dashboard/internal/shared/chart"
	"stock_dashboard/internal/shared/indicator"
)

const (
	// Period は移動平均の期間（日数）です。
	Period = 20

	// FigureTitle はインジケーターチャートのタイトルです。
	FigureTitle = "Exponential Moving Average (20-day) vs Date"
	// EMATraceName と SMATraceName は各系列の凡例名です。
	EMATraceName = "EWA_20"
	SMATraceName = "SMA_20"
)

// HistoryProvider は期間指定の日足を古い順で返します。
type HistoryProvider interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]candleentity.Candle, error)
}

// IndicatorsUsecase は終値から移動平均を計算します。
type IndicatorsUsecase struct {
	history HistoryProvider
}

// NewIndicatorsUsecase はIndicatorsUsecaseの新しいインスタンスを生成します。
func NewIndicatorsUsecase(history HistoryProvider) *IndicatorsUsecase {
	return &IndicatorsUsecase{history: history}
}

// GetIndicators は期間内の終値に対するEMA-20とSMA-20を返します。
// 入力検証とデータなしの判定はHistoryProviderに従います。
func (u *IndicatorsUsecase) GetIndicators(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error) {
	cs, err := u.history.GetHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: no price history", apperr.ErrDataUnavailable)
	}
	return Compute(candlesusecase.NormalizeSymbol(symbol), cs)
}

// Compute は古い順に並んだ日足から移動平均を計算します。
func Compute(symbol string, cs []candleentity.Candle) (*entity.Indicators, error) {
	closes := candleentity.Closes(cs)

	ema, err := indicator.EMA(closes, Period)
	if err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}
	sma, err := indicator.SMA(closes, Period)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}

	out := &entity.Indicators{
		Symbol: symbol,
		Period: Period,
		EMA:    make([]entity.Value, len(ema)),
		SMA:    make([]entity.Value, len(sma)),
	}
	for i, v := range ema {
		out.EMA[i] = entity.Value{Date: cs[i].Time, Value: v}
	}
	// SMAはcs[Period-1:]に対応する
	for i, v := range sma {
		out.SMA[i] = entity.Value{Date: cs[i+Period-1].Time, Value: v}
	}
	return out, nil
}

// Figure はEMAとSMAの折れ線チャートを組み立てます。
func Figure(ind *entity.Indicators) chart.Figure {
	return chart.Figure{
		Title:      FigureTitle,
		XAxisTitle: "Date",
		YAxisTitle: "Price",
		Traces: []chart.Trace{
			{Name: EMATraceName, Points: toPoints(ind.EMA)},
			{Name: SMATraceName, Points: toPoints(ind.SMA), Dash: chart.DashDotted},
		},
	}
}

func toPoints(vs []entity.Value) []chart.Point {
	out := make([]chart.Point, len(vs))
	for i, v := range vs {
		out[i] = chart.Point{Date: v.Date, Value: v.Value}
	}
	return out
}
