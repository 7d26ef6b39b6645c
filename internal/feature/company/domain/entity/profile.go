// Package entity defines the domain models for the company feature.
package entity

// Profile は銘柄の企業情報（名称・説明・ロゴ）を表します。
type Profile struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Exchange    string `json:"exchange"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
}
