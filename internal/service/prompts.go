package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moatezLita/salesGPT/internal/entity"
)

const (
	analysisSystemPrompt    = "You are an expert business analyst. Analyze the provided website data and extract key business insights."
	opportunitySystemPrompt = "You are an expert B2B sales strategist. Identify where a seller's offering meets a prospect's needs."
	emailSystemPrompt       = "You are an expert sales copywriter specializing in cold email outreach."

	analysisTemperature    = 0.7
	analysisMaxTokens      = 2000
	opportunityTemperature = 0.7
	opportunityMaxTokens   = 1000
	emailTemperature       = 0.8
	emailMaxTokens         = 1000

	// maxContentRunes bounds the page text embedded in the analysis prompt.
	maxContentRunes = 5000
	// EmailVariations is the number of drafts requested per generation.
	EmailVariations = 2

	noNotes        = "No additional notes provided"
	noBusinessInfo = "Not provided. Write from the perspective of a generic solution provider."
)

// analysisTemplate keeps the nine conventional keys in a fixed order.
type analysisTemplate struct {
	Industry            string   `json:"industry"`
	MarketPosition      string   `json:"market_position"`
	ProductsServices    []string `json:"products_services"`
	TargetAudience      string   `json:"target_audience"`
	UniqueSellingPoints []string `json:"unique_selling_points"`
	BrandVoice          string   `json:"brand_voice"`
	CustomerPainPoints  []string `json:"customer_pain_points"`
	Competitors         []string `json:"competitors"`
	SalesApproach       string   `json:"sales_approach"`
}

var analysisShape = analysisTemplate{
	Industry:            "Industry name and description",
	MarketPosition:      "Analysis of market position",
	ProductsServices:    []string{"Product/Service 1", "Product/Service 2"},
	TargetAudience:      "Description of target audience",
	UniqueSellingPoints: []string{"USP 1", "USP 2"},
	BrandVoice:          "Analysis of brand voice and tone",
	CustomerPainPoints:  []string{"Pain point 1", "Pain point 2"},
	Competitors:         []string{"Competitor 1", "Competitor 2"},
	SalesApproach:       "Recommended sales approach",
}

type opportunityTemplate struct {
	PainPoints       []string `json:"pain_points"`
	Benefits         []string `json:"benefits"`
	ValueMetrics     []string `json:"value_metrics"`
	CompetitiveEdges []string `json:"competitive_edges"`
	UseCases         []string `json:"use_cases"`
}

var opportunityShape = opportunityTemplate{
	PainPoints:       []string{"Prospect pain point the offering solves"},
	Benefits:         []string{"Concrete benefit for the prospect"},
	ValueMetrics:     []string{"Measurable outcome, e.g. hours saved per week"},
	CompetitiveEdges: []string{"Why this offering beats the prospect's alternatives"},
	UseCases:         []string{"Specific scenario where the prospect would use the offering"},
}

type emailsTemplate struct {
	Emails []entity.EmailDraft `json:"emails"`
}

// websiteSummary is the slice of a ScrapedSite shown to the analyst model.
type websiteSummary struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Content     string             `json:"content"`
	SocialLinks []string           `json:"social_links"`
	ContactInfo entity.ContactInfo `json:"contact_info"`
}

func buildAnalysisPrompt(site entity.ScrapedSite, customNotes string) (string, error) {
	summary := websiteSummary{
		Title:       site.Title,
		Description: site.MetaDescription,
		Content:     truncateRunes(site.MainContent, maxContentRunes),
		SocialLinks: site.SocialLinks,
		ContactInfo: site.ContactInfo,
	}
	if summary.SocialLinks == nil {
		summary.SocialLinks = []string{}
	}

	notes := strings.TrimSpace(customNotes)
	if notes == "" {
		notes = noNotes
	}

	data, err := indentJSON(summary)
	if err != nil {
		return "", err
	}
	shape, err := indentJSON(analysisShape)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze this company website data and provide insights in a structured JSON format.

Website Data:
%s

Additional Notes:
%s

Return your analysis in this exact JSON format:
%s`, data, notes, shape), nil
}

func buildOpportunityPrompt(analysis entity.AnalysisResult, info *entity.BusinessInfo) (string, error) {
	prospect, err := indentJSON(analysis)
	if err != nil {
		return "", err
	}
	shape, err := indentJSON(opportunityShape)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Assess how the seller's offering fits the prospect described below.

Prospect Analysis:
%s

Seller Business:
%s

Identify the prospect's pain points the offering addresses, the benefits it brings, the value metrics worth quoting, the competitive edges over alternatives, and the most convincing use cases.

Return your analysis in this exact JSON format:
%s`, prospect, describeBusiness(info), shape), nil
}

func buildEmailPrompt(analysis entity.AnalysisResult, info *entity.BusinessInfo, opportunity entity.OpportunityAnalysis, persona, tone string) (string, error) {
	prospect, err := indentJSON(analysis)
	if err != nil {
		return "", err
	}

	drafts := make([]entity.EmailDraft, EmailVariations)
	for i := range drafts {
		drafts[i] = entity.EmailDraft{
			Subject:      fmt.Sprintf("Subject line %d", i+1),
			Body:         fmt.Sprintf("Email body %d", i+1),
			CallToAction: fmt.Sprintf("CTA %d", i+1),
		}
	}
	shape, err := indentJSON(emailsTemplate{Emails: drafts})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d variations of a cold sales email based on this company analysis.\n", EmailVariations)
	fmt.Fprintf(&b, "Target persona: %s\nTone: %s\n\n", persona, tone)
	fmt.Fprintf(&b, "Company Analysis:\n%s\n\n", prospect)
	fmt.Fprintf(&b, "Sender Business:\n%s\n\n", describeBusiness(info))
	if len(opportunity) > 0 {
		fit, err := indentJSON(opportunity)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Opportunity Analysis:\n%s\n\n", fit)
	}
	fmt.Fprintf(&b, `Guidelines:
1. Keep emails concise (3-4 paragraphs)
2. Personalize based on company insights
3. Address specific pain points
4. Include clear value proposition
5. Match the requested tone: %s
6. End with strong call-to-action

Return the emails in this exact JSON format:
%s`, tone, shape)

	return b.String(), nil
}

func describeBusiness(info *entity.BusinessInfo) string {
	if info == nil || info.IsZero() {
		return noBusinessInfo
	}
	return fmt.Sprintf("Company name: %s\nBusiness type: %s\nProduct description: %s",
		orUnknown(info.CompanyName), orUnknown(info.BusinessType), orUnknown(info.ProductDescription))
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown"
	}
	return value
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt data: %w", err)
	}
	return string(data), nil
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := 0
	for i := range s {
		if runes == limit {
			return s[:i]
		}
		runes++
	}
	return s
}
