package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/pkg/auth"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type RouterDeps struct {
	JWTService      *auth.JWTService
	TokenRevoker    service.TokenRevoker
	AuthHandler     *AuthHandler
	ProfileHandler  *ProfileHandler
	DocumentHandler *DocumentHandler
	Logger          logger.Logger
}

// NewRouter wires every /api route onto router.
func NewRouter(router *gin.Engine, deps RouterDeps) {
	router.Use(TracingMiddleware("cv-portfolio-api"), ErrorMiddleware(deps.Logger))
	authMiddleware := AuthMiddleware(deps.JWTService, deps.TokenRevoker, deps.Logger)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/profile", NoStore(), deps.ProfileHandler.GetPublicProfile)

		admin := api.Group("/admin")
		{
			adminAuth := admin.Group("/auth")
			adminAuth.POST("/login", deps.AuthHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware, NoStore())
			{
				adminPrivate.POST("/auth/logout", deps.AuthHandler.Logout)
				adminPrivate.GET("/me", deps.AuthHandler.Me)

				adminPrivate.GET("/profile", deps.ProfileHandler.GetProfile)
				adminPrivate.PUT("/profile", deps.ProfileHandler.UpdateProfile)
				adminPrivate.POST("/profile/avatar", deps.ProfileHandler.UploadAvatar)
				adminPrivate.PUT("/profile/avatar", deps.ProfileHandler.SelectAvatar)

				documents := adminPrivate.Group("/documents")
				{
					documents.GET("", deps.DocumentHandler.ListDocuments)
					documents.POST("", deps.DocumentHandler.UploadDocument)
					documents.DELETE("/:id", deps.DocumentHandler.DeleteDocument)
				}
			}
		}
	}
}
