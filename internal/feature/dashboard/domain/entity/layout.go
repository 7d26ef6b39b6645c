// Package entity defines the dashboard's static layout and event results.
package entity

import (
	companyentity "stock_dashboard/internal/feature/company/domain/entity"
	"stock_dashboard/internal/shared/chart"
)

// Container はイベント結果の書き込み先となる出力領域のIDです。
type Container string

const (
	ContainerLogo        Container = "logo"
	ContainerCompanyName Container = "company-name"
	ContainerDescription Container = "description"
	// ContainerCompany はlogo、company-name、descriptionをまとめた領域です。
	ContainerCompany  Container = "company"
	ContainerGraphs   Container = "graphs-content"
	ContainerMain     Container = "main-content"
	ContainerForecast Container = "forecast-content"
)

// Input field names shared by the layout and the event handlers.
const (
	FieldSymbol    = "symbol"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldDays      = "days"
)

// Event names.
const (
	EventSubmit     = "submit"
	EventStockPrice = "stock-price"
	EventIndicators = "indicators"
	EventForecast   = "forecast"
)

// Field は入力欄です。
type Field struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Value       string
}

// Button はイベントを発火するボタンです。
type Button struct {
	Event  string
	Label  string
	Target Container
}

// Layout はダッシュボード画面の静的な記述です。ロジックは持ちません。
type Layout struct {
	Title      string
	Welcome    string
	Symbol     Field
	Submit     Button
	StartDate  Field
	EndDate    Field
	Days       Field
	Actions    []Button
	Forecast   Button
	Containers []Container
	// Symbols はシンボル入力の候補（ウォッチリスト）です。
	Symbols []string
}

// Inputs はイベントに渡されるフォーム値です。
type Inputs map[string]string

// Outcome はイベントハンドラーの結果です。
// Skippedの場合、出力領域は変更されません。
type Outcome struct {
	Skipped bool
	Target  Container
	Message string
	Company *companyentity.Profile
	Figure  *chart.Figure
}
