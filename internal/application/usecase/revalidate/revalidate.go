package revalidate

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

var tracer = otel.Tracer("revalidate_usecase")

type RevalidateUseCase struct {
	revalidator service.Revalidator
	logger      logger.Logger
}

func NewRevalidateUseCase(rv service.Revalidator, log logger.Logger) *RevalidateUseCase {
	return &RevalidateUseCase{revalidator: rv, logger: log}
}

type RevalidateInput struct {
	Path string
}

func (uc *RevalidateUseCase) Execute(ctx context.Context, input RevalidateInput) error {
	ctx, span := tracer.Start(ctx, "Revalidate")
	defer span.End()

	path := input.Path
	if path == "" {
		path = service.PublicPath
	}
	if !strings.HasPrefix(path, "/") {
		return apperror.NewInvalidInput("path must start with '/'", nil)
	}
	span.SetAttributes(attribute.String("path", path))

	if err := uc.revalidator.RevalidatePath(ctx, path); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("failed to revalidate path", err)
	}

	uc.logger.Info("Revalidated path", zap.String("path", path))
	return nil
}
