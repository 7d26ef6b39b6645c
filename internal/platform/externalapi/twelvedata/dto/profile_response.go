package dto

// ProfileResponse represents the JSON response from the Twelve Data profile endpoint.
type ProfileResponse struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Exchange    string `json:"exchange"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// LogoResponse represents the JSON response from the Twelve Data logo endpoint.
type LogoResponse struct {
	URL string `json:"url"`
}
