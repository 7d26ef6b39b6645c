// Package entity defines the domain models for the indicators feature.
package entity

import "time"

// Value is one indicator observation.
type Value struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Indicators holds the moving averages computed over a symbol's closing prices.
// EMA covers every close; SMA starts at the Period-th close.
type Indicators struct {
	Symbol string  `json:"symbol"`
	Period int     `json:"period"`
	EMA    []Value `json:"ema"`
	SMA    []Value `json:"sma"`
}
