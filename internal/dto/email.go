package dto

import "github.com/moatezLita/salesGPT/internal/entity"

// GenerateEmailRequest is the payload used by the generate-email endpoint.
// Empty persona and tone fall back to the service defaults.
type GenerateEmailRequest struct {
	BusinessInfo  *entity.BusinessInfo `json:"business_info,omitempty"`
	TargetPersona string               `json:"target_persona,omitempty"`
	Tone          string               `json:"tone,omitempty"`
}
