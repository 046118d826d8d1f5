package models

// BannerCampaign represents a promotional banner. StartDate and EndDate are
// optional YYYY-MM-DD dates bounding when the banner is shown.
type BannerCampaign struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	AltText   string `json:"altText"`
	LinkURL   string `json:"linkUrl,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	IsActive  bool   `json:"isActive"`
	Priority  int    `json:"priority"`
}

// CatalogData is the on-disk shape of the static catalog file
type CatalogData struct {
	Products []Product        `json:"products"`
	Designs  []Design         `json:"designs"`
	Banners  []BannerCampaign `json:"banners"`
}
