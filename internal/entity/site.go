package entity

// ContactInfo holds the contact details found on a company website.
// Phone and Address are reserved and currently never populated.
type ContactInfo struct {
	Email   *string `json:"email" bson:"email"`
	Phone   *string `json:"phone" bson:"phone"`
	Address *string `json:"address" bson:"address"`
}

// ScrapedSite is the normalized content extracted from a single fetched page.
type ScrapedSite struct {
	Title           string      `json:"title" bson:"title"`
	MetaDescription string      `json:"meta_description" bson:"meta_description"`
	MainContent     string      `json:"main_content" bson:"main_content"`
	SocialLinks     []string    `json:"social_links" bson:"social_links"`
	ContactInfo     ContactInfo `json:"contact_info" bson:"contact_info"`
	FinalURL        string      `json:"final_url" bson:"final_url"`
}
