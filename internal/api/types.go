package api

import "github.com/timbra-ai/voicebridge/domain/entities"

// NewLeadRequest represents the payload for registering a new lead
type NewLeadRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Service string `json:"service"`
}

// NewLeadResponse represents the response after a lead was contacted
type NewLeadResponse struct {
	Success bool          `json:"success"`
	Lead    entities.Lead `json:"lead"`
	Sent    string        `json:"sent"`
}

// LeadsResponse wraps the lead listing
type LeadsResponse struct {
	Leads []entities.Lead `json:"leads"`
}

// TokenResponse carries a client capability token
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
