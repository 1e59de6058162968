package entity

import "time"

// AnalysisResult is the business analysis returned by the language model.
// Conventional keys: industry, market_position, products_services, target_audience,
// unique_selling_points, brand_voice, customer_pain_points, competitors, sales_approach.
type AnalysisResult map[string]any

// AnalysisRecord is a persisted website analysis.
type AnalysisRecord struct {
	ID        string         `json:"_id"`
	URL       string         `json:"url"`
	Website   ScrapedSite    `json:"website_data"`
	Analysis  AnalysisResult `json:"analysis"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
