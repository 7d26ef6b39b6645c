package dto

import "stock_dashboard/internal/feature/forecast/domain/entity"

// PointResponse は日付と価格の組です。
type PointResponse struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// ForecastResponse は予測結果のレスポンスDTOです。
type ForecastResponse struct {
	Symbol    string          `json:"symbol"`
	Days      int             `json:"days"`
	Converged bool            `json:"converged"`
	Actual    []PointResponse `json:"actual"`
	Predicted []PointResponse `json:"predicted"`
}

func NewForecastResponse(f *entity.Forecast) ForecastResponse {
	return ForecastResponse{
		Symbol:    f.Symbol,
		Days:      f.Days,
		Converged: f.Converged,
		Actual:    toPoints(f.Actual),
		Predicted: toPoints(f.Predicted),
	}
}

func toPoints(obs []entity.Observation) []PointResponse {
	out := make([]PointResponse, 0, len(obs))
	for _, o := range obs {
		out = append(out, PointResponse{Date: o.Date.UTC().Format("2006-01-02"), Price: o.Price})
	}
	return out
}
