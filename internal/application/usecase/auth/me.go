package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/cv-portfolio/internal/domain/user"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
)

type GetMeUseCase struct {
	userRepo user.Repository
}

func NewGetMeUseCase(repo user.Repository) *GetMeUseCase {
	return &GetMeUseCase{userRepo: repo}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "GetMe")
	defer span.End()

	if ownerID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("no owner in session")
	}

	u, err := uc.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotAuthenticated("session owner no longer exists")
		}
		return nil, apperror.NewInternal("failed to load user", err)
	}
	return u, nil
}
