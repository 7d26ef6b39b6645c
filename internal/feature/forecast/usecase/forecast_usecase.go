// Package usecase は終値の短期予測を実装します。
//
// 直近1年の日足終値を日インデックス（0, 1, ..., n-1）に対して
// RBFカーネルのSVR（C=1000, gamma=0.1）で当てはめ、n以降のdays日分を予測します。
// 特徴量の正規化は行いません。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	candleentity "stock_dashboard/internal/feature/candles/domain/entity"
	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	"stock_dashboard/internal/feature/forecast/domain/entity"
	"stock_dashboard/internal/shared/apperr"
	"stock_dashboard/internal/shared/chart"
	"stock_dashboard/internal/shared/regression"
)

const (
	// C と Gamma はSVRのハイパーパラメータです。
	C     = 1000
	Gamma = 0.1

	ActualTraceName    = "Actual Close"
	PredictedTraceName = "Predicted Close"
)

// MarketRepository は期間指定で日足を取得します。
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]candleentity.Candle, error)
}

// ForecastUsecase は終値予測のユースケースです。
type ForecastUsecase struct {
	market MarketRepository
	model  regression.SVR
	now    func() time.Time
}

// NewForecastUsecase はForecastUsecaseの新しいインスタンスを生成します。
func NewForecastUsecase(market MarketRepository) *ForecastUsecase {
	return &ForecastUsecase{
		market: market,
		model:  regression.NewSVR(C, Gamma),
		now:    time.Now,
	}
}

// ParseHorizon は予測日数の入力を解釈します。正の整数以外はErrInvalidArgumentです。
func ParseHorizon(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: days is required", apperr.ErrInvalidArgument)
	}
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: days %q is not an integer", apperr.ErrInvalidArgument, s)
	}
	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be positive, got %d", apperr.ErrInvalidArgument, days)
	}
	return days, nil
}

// Forecast はsymbolの直近1年の終値からdays日先までの終値を予測します。
func (u *ForecastUsecase) Forecast(ctx context.Context, symbol string, days int) (*entity.Forecast, error) {
	symbol = candlesusecase.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", apperr.ErrInvalidArgument)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", apperr.ErrInvalidArgument, days)
	}

	end := candlesusecase.Today(u.now())
	start := end.AddDate(-1, 0, 0)
	cs, err := u.market.GetTimeSeries(ctx, symbol, candlesusecase.DefaultInterval, start, end)
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", symbol, err)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: no price history for %s", apperr.ErrDataUnavailable, symbol)
	}
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Time.Before(cs[j].Time) })

	x := make([][]float64, len(cs))
	for i := range cs {
		x[i] = []float64{float64(i)}
	}
	model, err := u.model.Fit(x, candleentity.Closes(cs))
	if err != nil {
		return nil, fmt.Errorf("forecast %s: fit: %w", symbol, err)
	}
	if !model.Converged {
		slog.Warn("svr did not converge", "symbol", symbol, "iterations", model.Iterations)
	}

	out := &entity.Forecast{
		Symbol:    symbol,
		Days:      days,
		Actual:    make([]entity.Observation, len(cs)),
		Predicted: make([]entity.Observation, days),
		Converged: model.Converged,
	}
	for i, c := range cs {
		out.Actual[i] = entity.Observation{Date: c.Time, Price: c.Close}
	}

	n := len(cs)
	last := cs[n-1].Time
	for i := 0; i < days; i++ {
		out.Predicted[i] = entity.Observation{
			Date:  last.AddDate(0, 0, i+1),
			Price: model.Predict([]float64{float64(n + i)}),
		}
	}

	slog.Debug("forecast generated", "symbol", symbol, "days", days, "samples", n, "support_vectors", model.SupportVectors())
	return out, nil
}

// Figure は実績と予測の折れ線チャートを組み立てます。予測は破線です。
func Figure(f *entity.Forecast) chart.Figure {
	return chart.Figure{
		Title:      "Stock Price Prediction for " + f.Symbol,
		XAxisTitle: "Date",
		YAxisTitle: "Price",
		Traces: []chart.Trace{
			{Name: ActualTraceName, Points: toPoints(f.Actual)},
			{Name: PredictedTraceName, Points: toPoints(f.Predicted), Dash: chart.DashDashed},
		},
	}
}

func toPoints(obs []entity.Observation) []chart.Point {
	out := make([]chart.Point, len(obs))
	for i, o := range obs {
		out[i] = chart.Point{Date: o.Date, Value: o.Price}
	}
	return out
}
