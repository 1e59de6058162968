package dto

// AnalyzeWebsiteRequest is the payload used by the analyze-website endpoint.
type AnalyzeWebsiteRequest struct {
	URL         string `json:"url"`
	CustomNotes string `json:"custom_notes,omitempty"`
}
