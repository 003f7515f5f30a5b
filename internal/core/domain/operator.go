package domain

// Operator is the authenticated person or terminal driving the point of sale.
// Identity is owned by the external provider; only these fields are kept.
type Operator struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
