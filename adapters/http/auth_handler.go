package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/cv-portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type AuthHandler struct {
	loginUseCase  *auth.LoginUseCase
	logoutUseCase *auth.LogoutUseCase
	meUseCase     *auth.GetMeUseCase
	logger        logger.Logger
}

func NewAuthHandler(loginUC *auth.LoginUseCase, logoutUC *auth.LogoutUseCase, meUC *auth.GetMeUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUC,
		logoutUseCase: logoutUC,
		meUseCase:     meUC,
		logger:        log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("email and password are required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{AccessToken: output.AccessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, expiresAt := getTokenFromGinContext(c)
	err := h.logoutUseCase.Execute(c.Request.Context(), auth.LogoutInput{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	ownerID, _ := GetOwnerIDFromGinContext(c)
	u, err := h.meUseCase.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToMeDTO(u))
}
