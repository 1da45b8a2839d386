package http

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

var registerOnce sync.Once

// registerValidators adds the "category" rule to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("gin validator engine is not go-playground/validator, category rule not registered")
			return
		}
		if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return domain.Category(fl.Field().String()).IsValid()
		}); err != nil {
			slog.Error("Failed to register category validator", "error", err)
		}
	})
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	registerValidators()

	api := router.Group("/api/v1")
	{
		api.GET("/portfolio", handler.ListPortfolio)
		api.GET("/portfolio/:id", handler.GetItem)
		api.GET("/categories", handler.ListCategories)
		api.GET("/services", handler.ListServices)
		api.GET("/services/:slug", handler.GetService)
		api.POST("/contact", handler.SubmitContact)
		api.POST("/admin/login", handler.Login)
	}

	admin := api.Group("/admin", RequireSession(handler.auth))
	{
		admin.GET("/session", handler.CurrentSession)
		admin.POST("/portfolio", handler.CreateItem)
		admin.PATCH("/portfolio/:id", handler.UpdateItem)
		admin.DELETE("/portfolio/:id", handler.DeleteItem)
		admin.DELETE("/portfolio/:id/images", handler.RemoveImage)
		admin.POST("/portfolio/refresh", handler.RefreshPortfolio)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "loading": handler.portfolioService.Loading()})
	})
}
