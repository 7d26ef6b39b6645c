// Package entity defines the domain models for the candles feature.
package entity

import "time"

// Candle represents one OHLCV bar for a stock symbol, as delivered by the
// market-data provider with no transformation beyond type parsing.
type Candle struct {
	Symbol   string    `json:"symbol"`   // Stock ticker symbol (e.g., "AAPL")
	Interval string    `json:"interval"` // Bar interval (e.g., "1day")
	Time     time.Time `json:"time"`     // Start of the bar period
	Open     float64   `json:"open"`     // Opening price
	High     float64   `json:"high"`     // Highest price during this period
	Low      float64   `json:"low"`      // Lowest price during this period
	Close    float64   `json:"close"`    // Closing price
	Volume   int64     `json:"volume"`   // Trading volume
}

// Closes extracts the closing prices in slice order.
func Closes(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}
