package entity

import "time"

// EmailDraft is one generated outreach email.
type EmailDraft struct {
	Subject      string `json:"subject" bson:"subject"`
	Body         string `json:"body" bson:"body"`
	CallToAction string `json:"call_to_action" bson:"call_to_action"`
}

// BusinessInfo describes the sender's own business.
type BusinessInfo struct {
	CompanyName        string `json:"company_name" bson:"company_name"`
	BusinessType       string `json:"business_type" bson:"business_type"`
	ProductDescription string `json:"product_description" bson:"product_description"`
}

// IsZero reports whether no field was provided.
func (b BusinessInfo) IsZero() bool {
	return b.CompanyName == "" && b.BusinessType == "" && b.ProductDescription == ""
}

// OpportunityAnalysis maps how the sender's offering fits a prospect. Conventional keys:
// pain_points, benefits, value_metrics, competitive_edges, use_cases.
type OpportunityAnalysis map[string]any

// EmailRecord is a persisted batch of drafts generated for one analysis.
type EmailRecord struct {
	ID            string              `json:"_id"`
	AnalysisID    string              `json:"analysis_id"`
	Emails        []EmailDraft        `json:"emails"`
	BusinessInfo  *BusinessInfo       `json:"business_info,omitempty"`
	Opportunity   OpportunityAnalysis `json:"opportunity,omitempty"`
	TargetPersona string              `json:"target_persona"`
	Tone          string              `json:"tone"`
	CreatedAt     time.Time           `json:"created_at"`
}
