package domain

// UserProfile describes the business operating the point of sale.
type UserProfile struct {
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Address      string `json:"address,omitempty"`
	Currency     string `json:"currency,omitempty"`
}
