package dto

import "stock_dashboard/internal/feature/candles/domain/entity"

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	Time   string  `json:"time"`   // 日付
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// HistoryResponse は銘柄ごとの価格履歴です。
type HistoryResponse struct {
	Symbol  string           `json:"symbol"`
	Candles []CandleResponse `json:"candles"`
}

// NewHistoryResponse はエンティティをレスポンスDTOに変換します。
func NewHistoryResponse(symbol string, candles []entity.Candle) HistoryResponse {
	out := make([]CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, CandleResponse{
			Time:   x.Time.UTC().Format("2006-01-02"),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	return HistoryResponse{Symbol: symbol, Candles: out}
}
