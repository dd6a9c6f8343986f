package router

import (
	"github.com/gin-gonic/gin"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/controller"
	"github.com/arutourism/arutourism-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	empresaController   *controller.EmpresaController
	tagController       *controller.TagController
	avaliacaoController *controller.AvaliacaoController
	favoriteController  *controller.FavoriteController
	imageController     *controller.ImageController
	importController    *controller.ImportController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	empresaController *controller.EmpresaController,
	tagController *controller.TagController,
	avaliacaoController *controller.AvaliacaoController,
	favoriteController *controller.FavoriteController,
	imageController *controller.ImageController,
	importController *controller.ImportController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		empresaController:   empresaController,
		tagController:       tagController,
		avaliacaoController: avaliacaoController,
		favoriteController:  favoriteController,
		imageController:     imageController,
		importController:    importController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "AruTourism API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.OptionalAuthenticate(), r.authController.Logout)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
			auth.PUT("/password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		empresas := v1.Group("/empresas")
		{
			empresas.GET("", r.empresaController.List)
			empresas.GET("/filtros", r.empresaController.FilterOptions)
			empresas.GET("/slug/:slug", r.empresaController.GetBySlug)
			empresas.GET("/minhas", r.authMiddleware.Authenticate(), r.empresaController.ListMine)
			empresas.GET("/:id", r.empresaController.GetByID)

			empresas.POST("", r.authMiddleware.Authenticate(), r.empresaController.Create)
			empresas.PUT("/:id", r.authMiddleware.Authenticate(), r.empresaController.Update)
			empresas.DELETE("/:id", r.authMiddleware.Authenticate(), r.empresaController.Delete)

			// ratings hang off the listing they belong to
			empresas.GET("/:id/avaliacoes", r.avaliacaoController.ListByEmpresa)
			empresas.POST("/:id/avaliacoes", r.authMiddleware.Authenticate(), r.avaliacaoController.Create)

			empresas.GET("/:id/favorito", r.authMiddleware.OptionalAuthenticate(), r.favoriteController.Status)
			empresas.POST("/:id/favorito", r.authMiddleware.Authenticate(), r.favoriteController.Add)
			empresas.DELETE("/:id/favorito", r.authMiddleware.Authenticate(), r.favoriteController.Remove)

			empresas.GET("/:id/imagens", r.imageController.ListByEmpresa)
			empresas.POST("/:id/imagens", r.authMiddleware.Authenticate(), r.imageController.Add)
			empresas.DELETE("/:id/imagens/:imageID", r.authMiddleware.Authenticate(), r.imageController.Remove)
			empresas.PUT("/:id/imagens/:imageID/principal", r.authMiddleware.Authenticate(), r.imageController.SetPrincipal)

			empresas.POST("/importar", r.authMiddleware.Authenticate(), r.importController.Import)
			empresas.GET("/importar/modelo", r.importController.Template)
		}

		avaliacoes := v1.Group("/avaliacoes")
		{
			avaliacoes.PUT("/:id", r.authMiddleware.Authenticate(), r.avaliacaoController.Update)
			avaliacoes.DELETE("/:id", r.authMiddleware.Authenticate(), r.avaliacaoController.Delete)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.Tree)
			tags.GET("/todas", r.tagController.List)

			tags.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.Create,
			)
			tags.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.Rename,
			)
			tags.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.Delete,
			)
		}

		v1.GET("/favoritos", r.authMiddleware.Authenticate(), r.favoriteController.ListMine)

		upload := v1.Group("/upload")
		{
			upload.POST("/presigned-url", r.authMiddleware.Authenticate(), r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
