package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	documentUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/document"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type DocumentHandler struct {
	documentUC *documentUC.DocumentUseCase
	logger     logger.Logger
}

func NewDocumentHandler(uc *documentUC.DocumentUseCase, log logger.Logger) *DocumentHandler {
	return &DocumentHandler{documentUC: uc, logger: log}
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	docs, err := h.documentUC.List(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDocumentDTOs(docs))
}

func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read file", err))
		return
	}
	defer file.Close()

	doc, err := h.documentUC.Upload(c.Request.Context(), documentUC.UploadDocumentInput{
		OwnerID:  ownerID,
		FileName: fileHeader.Filename,
		File:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToDocumentDTO(doc))
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid document id", err))
		return
	}

	if err := h.documentUC.Delete(c.Request.Context(), id, ownerID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
