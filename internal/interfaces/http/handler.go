package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// PortfolioService defines the interface for portfolio operations
type PortfolioService interface {
	Items() []domain.PortfolioItem
	ItemsByCategory(category domain.Category) []domain.PortfolioItem
	Get(id string) (*domain.PortfolioItem, error)
	Loading() bool
	Refresh(ctx context.Context) error
	Add(ctx context.Context, fields domain.ItemFields, files []domain.ImageFile) (*domain.PortfolioItem, error)
	Update(ctx context.Context, id string, patch domain.ItemPatch, newFiles []domain.ImageFile) (*domain.PortfolioItem, error)
	DeleteItem(ctx context.Context, id string) error
	RemoveImage(ctx context.Context, id, ref string) (*domain.PortfolioItem, error)
}

type ContactService interface {
	Submit(ctx context.Context, msg domain.ContactMessage) error
}

const DefaultMaxUploadBytes int64 = 5 << 20

type Handler struct {
	portfolioService PortfolioService
	contactService   ContactService
	auth             domain.AuthProvider
	services         []domain.Service
	maxUploadBytes   int64
}

func NewHandler(portfolioService PortfolioService, contactService ContactService, auth domain.AuthProvider, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		portfolioService: portfolioService,
		contactService:   contactService,
		auth:             auth,
		services:         domain.DefaultServices(),
		maxUploadBytes:   maxUploadBytes,
	}
}

type CreateItemRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Category    string `form:"category" binding:"required,category"`
	Description string `form:"description" binding:"max=4000"`
}

type RemoveImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) ListPortfolio(c *gin.Context) {
	raw, ok := c.GetQuery("category")
	if !ok || raw == "" {
		c.JSON(http.StatusOK, h.portfolioService.Items())
		return
	}

	category, err := domain.ParseCategory(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.portfolioService.ItemsByCategory(category))
}

func (h *Handler) GetItem(c *gin.Context) {
	itemID := c.Param("id")

	item, err := h.portfolioService.Get(itemID)
	if err != nil {
		respondError(c, err, "Failed to get portfolio item", "item_id", itemID)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Categories())
}

func (h *Handler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services":      h.services,
		"starting_from": domain.LowestStartingPrice(h.services),
		"currency":      domain.CurrencyUAH,
	})
}

func (h *Handler) GetService(c *gin.Context) {
	service, ok := domain.FindService(h.services, c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "service not found"})
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "Invalid contact request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	msg := domain.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Message:  req.Message,
	}
	if err := h.contactService.Submit(c.Request.Context(), msg); err != nil {
		respondError(c, err, "Failed to submit contact message")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "message received"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(c, err, "Sign in failed", "email", req.Email)
		return
	}

	slog.InfoContext(c.Request.Context(), "Administrator signed in", "email", session.Email)
	c.JSON(http.StatusOK, session)
}

func (h *Handler) CurrentSession(c *gin.Context) {
	session, ok := SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: domain.ErrUnauthenticated.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":    session.UserID,
		"email":      session.Email,
		"expires_at": session.ExpiresAt,
	})
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "Invalid portfolio item form", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	files, err := h.readImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	fields := domain.ItemFields{
		Title:       req.Title,
		Category:    domain.Category(req.Category),
		Description: req.Description,
	}
	item, err := h.portfolioService.Add(c.Request.Context(), fields, files)
	if err != nil {
		respondError(c, err, "Failed to add portfolio item", "title", req.Title)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")

	var patch domain.ItemPatch
	if title, ok := c.GetPostForm("title"); ok {
		patch.Title = &title
	}
	if raw, ok := c.GetPostForm("category"); ok {
		category := domain.Category(raw)
		patch.Category = &category
	}
	if description, ok := c.GetPostForm("description"); ok {
		patch.Description = &description
	}

	files, err := h.readImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.portfolioService.Update(c.Request.Context(), itemID, patch, files)
	if err != nil {
		respondError(c, err, "Failed to update portfolio item", "item_id", itemID)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	itemID := c.Param("id")

	if err := h.portfolioService.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondError(c, err, "Failed to delete portfolio item", "item_id", itemID)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveImage(c *gin.Context) {
	itemID := c.Param("id")

	var req RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.portfolioService.RemoveImage(c.Request.Context(), itemID, req.ImageURL)
	if err != nil {
		respondError(c, err, "Failed to remove image", "item_id", itemID, "image_url", req.ImageURL)
		return
	}

	if item == nil {
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": false, "item": item})
}

func (h *Handler) RefreshPortfolio(c *gin.Context) {
	if err := h.portfolioService.Refresh(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to refresh portfolio")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "portfolio refreshed successfully",
		"count":   len(h.portfolioService.Items()),
	})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var uploadErr *domain.UploadError
	var persistErr *domain.PersistError
	var deleteErr *domain.ImageDeleteError

	switch {
	case errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrNoFiles),
		errors.Is(err, domain.ErrInvalidContact):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &uploadErr),
		errors.As(err, &persistErr),
		errors.As(err, &deleteErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, msg string, attrs ...any) {
	status := statusFor(err)
	attrs = append(attrs, "status", status, "error", err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), msg, attrs...)
	} else {
		slog.WarnContext(c.Request.Context(), msg, attrs...)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
