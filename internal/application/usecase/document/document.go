package document

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/document"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

const Folder = "documents"

var tracer = otel.Tracer("document_usecase")

type DocumentUseCase struct {
	docRepo  document.Repository
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewDocumentUseCase(repo document.Repository, u service.Uploader, log logger.Logger) *DocumentUseCase {
	return &DocumentUseCase{
		docRepo:  repo,
		uploader: u,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *DocumentUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*document.Document, error) {
	ctx, span := tracer.Start(ctx, "ListDocuments")
	defer span.End()

	if ownerID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("document list without session")
	}
	docs, err := uc.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list documents", err)
	}
	return docs, nil
}

type UploadDocumentInput struct {
	OwnerID  uuid.UUID
	FileName string
	File     io.Reader
}

func (in UploadDocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FileName, validation.Required.Error("file name is required"), validation.Length(1, 255)),
		validation.Field(&in.File, validation.Required.Error("file is required")),
	)
}

func (uc *DocumentUseCase) Upload(ctx context.Context, input UploadDocumentInput) (*document.Document, error) {
	ctx, span := tracer.Start(ctx, "UploadDocument")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("document upload without session")
	}
	input.FileName = strings.TrimSpace(filepath.Base(input.FileName))
	if input.FileName == "." {
		input.FileName = ""
	}
	if err := input.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	id := uuid.New()
	result, err := uc.uploader.Upload(ctx, input.File, Folder, id.String())
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload document", err)
	}

	doc := &document.Document{
		ID:        id,
		OwnerID:   input.OwnerID,
		Name:      input.FileName,
		FileURL:   result.URL,
		FileType:  fileType(input.FileName, result.Format),
		PublicID:  result.PublicID,
		CreatedAt: uc.now(),
	}
	if err := uc.docRepo.Save(ctx, doc); err != nil {
		span.RecordError(err)
		if delErr := uc.uploader.Delete(ctx, result.PublicID); delErr != nil {
			uc.logger.Warn("Failed to remove orphaned upload", zap.String("public_id", result.PublicID), zap.Error(delErr))
		}
		return nil, apperror.NewStorageFailure("failed to save document", err)
	}
	return doc, nil
}

// Delete removes the row first; a failure to remove the stored file is only logged.
func (uc *DocumentUseCase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteDocument")
	defer span.End()

	if ownerID == uuid.Nil {
		return apperror.NewNotAuthenticated("document delete without session")
	}

	doc, err := uc.docRepo.FindByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return apperror.NewNotFound("document", id.String())
		}
		span.RecordError(err)
		return apperror.NewInternal("failed to load document", err)
	}

	if err := uc.docRepo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return apperror.NewNotFound("document", id.String())
		}
		span.RecordError(err)
		return apperror.NewInternal("failed to delete document", err)
	}

	if err := uc.uploader.Delete(ctx, doc.PublicID); err != nil {
		uc.logger.Warn("Failed to delete stored document file", zap.String("public_id", doc.PublicID), zap.Error(err))
	}
	return nil
}

func fileType(name, format string) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."); ext != "" {
		return ext
	}
	if format != "" {
		return strings.ToLower(format)
	}
	return "bin"
}
