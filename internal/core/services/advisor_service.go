package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
)

// unavailableAdvisor is used when no text-completion backend is configured.
type unavailableAdvisor struct{}

// NewUnavailableAdvisor returns an advisor that always reports unavailable.
func NewUnavailableAdvisor() portssvc.AdvisorSvc {
	return unavailableAdvisor{}
}

func (unavailableAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("%w: no advisor configured", apperrors.ErrUnavailable)
}
