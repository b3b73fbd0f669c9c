package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	avatarUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/avatar"
	profileUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

// ProfileSourceHeader tells the editor which copy of the profile it received.
const ProfileSourceHeader = "X-Profile-Source"

type ProfileHandler struct {
	getProfileUC    *profileUC.GetProfileUseCase
	getPublicUC     *profileUC.GetPublicProfileUseCase
	updateProfileUC *profileUC.UpdateProfileUseCase
	uploadAvatarUC  *avatarUC.UploadAvatarUseCase
	selectAvatarUC  *avatarUC.SelectAvatarUseCase
	logger          logger.Logger
}

func NewProfileHandler(
	getUC *profileUC.GetProfileUseCase,
	publicUC *profileUC.GetPublicProfileUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	uploadUC *avatarUC.UploadAvatarUseCase,
	selectUC *avatarUC.SelectAvatarUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:    getUC,
		getPublicUC:     publicUC,
		updateProfileUC: updateUC,
		uploadAvatarUC:  uploadUC,
		selectAvatarUC:  selectUC,
		logger:          log,
	}
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	output := h.getPublicUC.Execute(c.Request.Context())
	c.Header(ProfileSourceHeader, string(output.Source))
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	output, err := h.getProfileUC.Execute(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.Header(ProfileSourceHeader, string(output.Source))
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	var form UpdateProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(apperror.NewInvalidInput("invalid profile form", err))
		return
	}

	output, err := h.updateProfileUC.Execute(c.Request.Context(), profileUC.UpdateProfileInput{
		OwnerID:     ownerID,
		FullName:    form.FullName,
		Role:        form.Role,
		Bio:         form.Bio,
		ThemeColor:  form.ThemeColor,
		Skills:      form.Skills,
		Experience:  form.Experience,
		Education:   form.Education,
		ContactInfo: form.ContactInfo,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	slot, err := strconv.Atoi(c.DefaultPostForm("slotIndex", "0"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("slotIndex must be a number", err))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.NewInvalidInput("avatar file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read avatar file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadAvatarUC.Execute(c.Request.Context(), avatarUC.UploadAvatarInput{
		OwnerID: ownerID,
		Slot:    slot,
		File:    file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AvatarDTO{URL: output.URL, Photos: output.Photos})
}

func (h *ProfileHandler) SelectAvatar(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)

	var req SelectAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("url is required", err))
		return
	}

	if err := h.selectAvatarUC.Execute(c.Request.Context(), avatarUC.SelectAvatarInput{OwnerID: ownerID, URL: req.URL}); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
