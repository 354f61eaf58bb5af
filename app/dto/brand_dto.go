package dto

// BrandInfoDTO is the API representation of the stored brand profile
type BrandInfoDTO struct {
	Name        string `json:"name" example:"Acme Analytics"`
	WebsiteURL  string `json:"website_url" example:"https://acme.example.com"`
	Description string `json:"description,omitempty" example:"Acme Analytics provides self-serve dashboards..."`
	UpdatedAt   string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// GetBrandResponse represents the configured brand profile
type GetBrandResponse struct {
	Brand BrandInfoDTO `json:"brand"`
}

// SaveBrandRequest represents the request payload for saving brand basics
type SaveBrandRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255" example:"Acme Analytics"`
	WebsiteURL string `json:"website_url" validate:"required,max=2048" example:"https://acme.example.com"`
}

// SaveBrandResponse represents the result of saving brand basics
type SaveBrandResponse struct {
	Message string       `json:"message" example:"Brand information saved"`
	Brand   BrandInfoDTO `json:"brand"`
}

// DescribeBrandRequest represents the request payload for generating a brand description
type DescribeBrandRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255" example:"Acme Analytics"`
	WebsiteURL string `json:"website_url" validate:"required,max=2048" example:"https://acme.example.com"`
}

// DescribeBrandResponse represents the result of scraping the website and
// generating a description for it
type DescribeBrandResponse struct {
	Message string       `json:"message" example:"Brand description generated"`
	Brand   BrandInfoDTO `json:"brand"`
}
