// Package entity defines the domain models for the forecast feature.
package entity

import "time"

// Observation は日付と価格の組です。
type Observation struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Forecast は直近1年の終値と、その続きの予測値です。
// Predictedの日付は最終観測日の翌日から1日刻みで並びます。
type Forecast struct {
	Symbol    string        `json:"symbol"`
	Days      int           `json:"days"`
	Actual    []Observation `json:"actual"`
	Predicted []Observation `json:"predicted"`

	// Converged はSVRの学習が許容誤差内で収束したかを表します。
	Converged bool `json:"converged"`
}
