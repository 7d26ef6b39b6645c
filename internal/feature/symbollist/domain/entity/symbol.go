// Package entity defines the domain models for the symbollist feature.
package entity

// Symbol はウォッチリストに登録された銘柄です。
// ダッシュボードの入力候補とingestの取り込み対象になります。
type Symbol struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Market   string `json:"market"`
	IsActive bool   `json:"is_active"`
	SortKey  int    `json:"sort_key"`
}
