package usecase

import (
	"context"
	"time"

	candleentity "stock_dashboard/internal/feature/candles/domain/entity"
	candleusecase "stock_dashboard/internal/feature/candles/usecase"
	companyentity "stock_dashboard/internal/feature/company/domain/entity"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	forecastentity "stock_dashboard/internal/feature/forecast/domain/entity"
	forecastusecase "stock_dashboard/internal/feature/forecast/usecase"
	indicatorentity "stock_dashboard/internal/feature/indicators/domain/entity"
	indicatorusecase "stock_dashboard/internal/feature/indicators/usecase"
)

type ProfileGetter interface {
	GetProfile(ctx context.Context, symbol string) (companyentity.Profile, error)
}

type HistoryGetter interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]candleentity.Candle, error)
}

type IndicatorsGetter interface {
	GetIndicators(ctx context.Context, symbol string, start, end time.Time) (*indicatorentity.Indicators, error)
}

type Forecaster interface {
	Forecast(ctx context.Context, symbol string, days int) (*forecastentity.Forecast, error)
}

// Deps は各イベントが呼び出すユースケースです。
type Deps struct {
	Profiles   ProfileGetter
	History    HistoryGetter
	Indicators IndicatorsGetter
	Forecaster Forecaster
	Now        func() time.Time
}

// NewActions はダッシュボードの4つのイベントを返します。
func NewActions(d Deps) []Action {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return []Action{
		{
			Event:    entity.EventSubmit,
			Requires: []string{entity.FieldSymbol},
			Target:   entity.ContainerCompany,
			Run: func(ctx context.Context, in entity.Inputs) (entity.Outcome, error) {
				p, err := d.Profiles.GetProfile(ctx, in[entity.FieldSymbol])
				if err != nil {
					return entity.Outcome{}, err
				}
				return entity.Outcome{Company: &p}, nil
			},
		},
		{
			Event:    entity.EventStockPrice,
			Requires: []string{entity.FieldSymbol},
			Target:   entity.ContainerGraphs,
			Run: func(ctx context.Context, in entity.Inputs) (entity.Outcome, error) {
				start, end, err := candleusecase.ParseDateRange(in[entity.FieldStartDate], in[entity.FieldEndDate], now())
				if err != nil {
					return entity.Outcome{}, err
				}
				symbol := candleusecase.NormalizeSymbol(in[entity.FieldSymbol])
				cs, err := d.History.GetHistory(ctx, symbol, start, end)
				if err != nil {
					return entity.Outcome{}, err
				}
				f := candleusecase.PriceFigure(symbol, cs)
				return entity.Outcome{Figure: &f}, nil
			},
		},
		{
			Event:    entity.EventIndicators,
			Requires: []string{entity.FieldSymbol},
			Target:   entity.ContainerMain,
			Run: func(ctx context.Context, in entity.Inputs) (entity.Outcome, error) {
				start, end, err := candleusecase.ParseDateRange(in[entity.FieldStartDate], in[entity.FieldEndDate], now())
				if err != nil {
					return entity.Outcome{}, err
				}
				ind, err := d.Indicators.GetIndicators(ctx, in[entity.FieldSymbol], start, end)
				if err != nil {
					return entity.Outcome{}, err
				}
				f := indicatorusecase.Figure(ind)
				return entity.Outcome{Figure: &f}, nil
			},
		},
		{
			Event:    entity.EventForecast,
			Requires: []string{entity.FieldSymbol, entity.FieldDays},
			Target:   entity.ContainerForecast,
			Run: func(ctx context.Context, in entity.Inputs) (entity.Outcome, error) {
				days, err := forecastusecase.ParseHorizon(in[entity.FieldDays])
				if err != nil {
					return entity.Outcome{}, err
				}
				fc, err := d.Forecaster.Forecast(ctx, in[entity.FieldSymbol], days)
				if err != nil {
					return entity.Outcome{}, err
				}
				f := forecastusecase.Figure(fc)
				return entity.Outcome{Figure: &f}, nil
			},
		},
	}
}
