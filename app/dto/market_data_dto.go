package dto

// CitedDomainDTO is the API representation of a cited domain row
type CitedDomainDTO struct {
	Domain       string  `json:"domain" example:"reddit.com"`
	Type         string  `json:"type" example:"UGC"`
	UsagePercent float64 `json:"usage_percent" example:"12.5"`
	AvgCitations float64 `json:"avg_citations" example:"34.2"`
}

// ChatSampleDTO is the API representation of an imported assistant conversation
type ChatSampleDTO struct {
	ID            string `json:"id" example:"chat_0001"`
	Model         string `json:"model" example:"gpt-4o"`
	UserText      string `json:"user_text" example:"What is the best analytics tool for startups?"`
	AssistantText string `json:"assistant_text" example:"There are several options worth considering..."`
}

// MarketDataStatusResponse summarizes how much data is available for the
// recommendation pipeline
type MarketDataStatusResponse struct {
	BrandConfigured bool  `json:"brand_configured" example:"true"`
	ICPCount        int64 `json:"icp_count" example:"3"`
	ChatCount       int64 `json:"chat_count" example:"120"`
	DomainCount     int64 `json:"domain_count" example:"45"`
}

// ImportDomainsResponse represents the result of a cited-domain file import
type ImportDomainsResponse struct {
	Message      string  `json:"message" example:"Successfully imported 45 domains"`
	Imported     int     `json:"imported" example:"45"`
	TotalDomains int64   `json:"total_domains" example:"45"`
	UniqueTypes  int     `json:"unique_types" example:"4"`
	AvgCitations float64 `json:"avg_citations" example:"18.7"`
}

// ImportChatsResponse represents the result of a chat-sample file import
type ImportChatsResponse struct {
	Message             string  `json:"message" example:"Successfully imported 120 chats"`
	Imported            int     `json:"imported" example:"120"`
	TotalChats          int64   `json:"total_chats" example:"120"`
	UniqueModels        int     `json:"unique_models" example:"5"`
	WithResponsePercent float64 `json:"with_response_percent" example:"97.5"`
}

// ListDomainsResponse represents stored cited domains ordered by citations
type ListDomainsResponse struct {
	Domains []CitedDomainDTO `json:"domains"`
	Total   int64            `json:"total" example:"45"`
}

// ListChatsResponse represents stored chat samples, newest first
type ListChatsResponse struct {
	Chats []ChatSampleDTO `json:"chats"`
	Total int64           `json:"total" example:"120"`
}

// ClearMarketDataResponse represents the result of clearing a market data table
type ClearMarketDataResponse struct {
	Message string `json:"message" example:"All cited domains deleted"`
	Deleted int64  `json:"deleted" example:"45"`
}
