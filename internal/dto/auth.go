package dto

import "time"

// ExchangeCodeRequest defines the expected JSON body for the Google code exchange.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse carries the application's access token.
type ExchangeCodeResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
