package dto

import "stock_dashboard/internal/feature/company/domain/entity"

// ProfileResponse は企業情報のレスポンスDTOです。
type ProfileResponse struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Website     string `json:"website,omitempty"`
}

func NewProfileResponse(p entity.Profile) ProfileResponse {
	return ProfileResponse(p)
}
