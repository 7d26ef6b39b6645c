package usecase

import (
	"time"

	candleusecase "stock_dashboard/internal/feature/candles/usecase"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
)

// BuildLayout は画面のレイアウトを返します。
// 日付範囲の初期値は2020-01-01から今日までです。
func BuildLayout(now time.Time, symbols []string) entity.Layout {
	return entity.Layout{
		Title:   "Stock Dash",
		Welcome: "Welcome to the Stock Dash App!",
		Symbol: entity.Field{
			Name:        entity.FieldSymbol,
			Type:        "text",
			Placeholder: "Enter stock code",
		},
		Submit: entity.Button{Event: entity.EventSubmit, Label: "Submit", Target: entity.ContainerCompany},
		StartDate: entity.Field{
			Name:  entity.FieldStartDate,
			Label: "Start date",
			Type:  "date",
			Value: candleusecase.DefaultStart.Format(candleusecase.DateLayout),
		},
		EndDate: entity.Field{
			Name:  entity.FieldEndDate,
			Label: "End date",
			Type:  "date",
			Value: candleusecase.Today(now).Format(candleusecase.DateLayout),
		},
		Actions: []entity.Button{
			{Event: entity.EventStockPrice, Label: "Get Stock Price", Target: entity.ContainerGraphs},
			{Event: entity.EventIndicators, Label: "Get Indicators", Target: entity.ContainerMain},
		},
		Days: entity.Field{
			Name:        entity.FieldDays,
			Type:        "number",
			Placeholder: "Enter number of days",
		},
		Forecast: entity.Button{Event: entity.EventForecast, Label: "Get Forecast", Target: entity.ContainerForecast},
		Containers: []entity.Container{
			entity.ContainerLogo,
			entity.ContainerCompanyName,
			entity.ContainerDescription,
			entity.ContainerGraphs,
			entity.ContainerMain,
			entity.ContainerForecast,
		},
		Symbols: symbols,
	}
}
