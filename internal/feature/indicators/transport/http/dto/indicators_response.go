package dto

import "stock_dashboard/internal/feature/indicators/domain/entity"

// ValueResponse は日付と値の組です。
type ValueResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// IndicatorsResponse は移動平均のレスポンスDTOです。
type IndicatorsResponse struct {
	Symbol string          `json:"symbol"`
	Period int             `json:"period"`
	EMA    []ValueResponse `json:"ema"`
	SMA    []ValueResponse `json:"sma"`
}

func NewIndicatorsResponse(ind *entity.Indicators) IndicatorsResponse {
	return IndicatorsResponse{
		Symbol: ind.Symbol,
		Period: ind.Period,
		EMA:    toValues(ind.EMA),
		SMA:    toValues(ind.SMA),
	}
}

func toValues(vs []entity.Value) []ValueResponse {
	out := make([]ValueResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, ValueResponse{Date: v.Date.UTC().Format("2006-01-02"), Value: v.Value})
	}
	return out
}
