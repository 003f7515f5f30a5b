package services

import "context"

// AdvisorSvc is the external text-completion collaborator used for advisory notes.
// It is opaque: callers treat any error as "advice unavailable".
type AdvisorSvc interface {
	Advise(ctx context.Context, prompt string) (string, error)
}
