package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type LogoutUseCase struct {
	revoker service.TokenRevoker
	logger  logger.Logger
	now     func() time.Time
}

func NewLogoutUseCase(revoker service.TokenRevoker, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{revoker: revoker, logger: log, now: time.Now}
}

type LogoutInput struct {
	TokenID   string
	ExpiresAt time.Time
}

// Execute revokes the token until it would have expired.
func (uc *LogoutUseCase) Execute(ctx context.Context, input LogoutInput) error {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	if input.TokenID == "" {
		return apperror.NewNotAuthenticated("token without id")
	}

	ttl := input.ExpiresAt.Sub(uc.now())
	if err := uc.revoker.Revoke(ctx, input.TokenID, ttl); err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to revoke token", err, zap.String("token_id", input.TokenID))
		return apperror.NewInternal("failed to revoke token", err)
	}
	return nil
}
