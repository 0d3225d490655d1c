package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"lumijob/pkg/events"
)

// Rejection is a business rule outcome. It is not an error: callers report
// it to the client as a rejected result with the message unchanged.
type Rejection string

const (
	RejectQuotaExceeded  Rejection = "please update subscription"
	RejectAlreadyApplied Rejection = "already applied"
	RejectProfileMissing Rejection = "please complete profile information"
	RejectResumeMissing  Rejection = "please upload a resume"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publish delivers e without letting a broker failure reach the caller.
func publish(ctx context.Context, pub events.Publisher, logger *zap.Logger, e events.Event) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, e); err != nil {
		logger.Warn("publish event",
			zap.String("type", e.Type),
			zap.String("job_id", e.JobID),
			zap.String("email", e.Email),
			zap.Error(err))
	}
}
