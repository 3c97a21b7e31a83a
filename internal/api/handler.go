package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/service"
	"github.com/safarhub/backoffice/internal/utils"
)

// Handler wires the screen services to the HTTP surface
type Handler struct {
	screens *service.Screens
	ledger  *service.LedgerService
	exports *service.ExportService
	lookups *service.LookupService
	auth    *service.AuthService
	audit   *service.AuditService
	mailer  *service.Mailer
	logger  *utils.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	screens *service.Screens,
	ledger *service.LedgerService,
	exports *service.ExportService,
	lookups *service.LookupService,
	auth *service.AuthService,
	audit *service.AuditService,
	mailer *service.Mailer,
	logger *utils.Logger,
) *Handler {
	return &Handler{
		screens: screens,
		ledger:  ledger,
		exports: exports,
		lookups: lookups,
		auth:    auth,
		audit:   audit,
		mailer:  mailer,
		logger:  logger,
	}
}

// SetupRoutes registers all routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	apiGroup.POST("/admin/login", h.login)

	protected := apiGroup.Group("")
	protected.Use(AuthMiddleware())

	registerResource(protected, h, "/flights", "flight", h.screens.Flights, false)
	registerResource(protected, h, "/hotels", "hotel", h.screens.Hotels, false)
	registerResource(protected, h, "/packages", "package", h.screens.Packages, false)
	registerResource(protected, h, "/tours", "tour", h.screens.Tours, false)
	registerResource(protected, h, "/visas", "visa", h.screens.Visas, false)
	registerResource(protected, h, "/group-ticketing", "group-ticketing", h.screens.GroupTicketing, true)
	registerResource(protected, h, "/content", "content", h.screens.Content, false)
	registerResource(protected, h, "/payments", "payment", h.screens.Payments, true)
	registerResource(protected, h, "/auth/users", "agency-user", h.screens.AgencyUsers, false)

	protected.PUT("/content/:id/publish", h.publishContent)

	protected.GET("/payment/ledger/:id", h.getLedger)
	protected.GET("/payment/ledger/:id/export/:kind", h.exportLedger)
	protected.POST("/payment/ledger/:id/email", h.emailLedger)
	protected.GET("/export/users/:kind", h.exportUsers)

	protected.GET("/airlines", h.listAirlines)
	protected.GET("/sectors", h.listSectors)
	protected.GET("/banks", h.listBanks)

	protected.GET("/admin/audit", h.listAudit)
}

func (h *Handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status:  "error",
			Code:    "UNAUTHORIZED",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) publishContent(c *gin.Context) {
	id := c.Param("id")
	err := h.screens.Content.Invoke(c.Request.Context(), id, "publish", "Content page published successfully")
	if err != nil {
		respondError(c, err, "Failed to publish content page")
		return
	}

	h.audit.Record(c.Request.Context(), actor(c), "publish", "content", id, nil)
	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Content page published successfully"})
}

func (h *Handler) listAudit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.audit.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL",
			Message: "Failed to load audit trail",
		})
		return
	}
	c.JSON(http.StatusOK, models.AuditResponse{Status: "success", Events: events})
}

// actor returns the authenticated operator for audit records,
// preferring the email over the opaque account id
func actor(c *gin.Context) string {
	if email, ok := c.Get("userEmail"); ok {
		if s, ok := email.(string); ok && s != "" {
			return s
		}
	}
	if id, ok := c.Get("userId"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "unknown"
}

// respondError maps service errors onto the error taxonomy: validation
// failures, backend-reported errors (message surfaced verbatim),
// transport failures and everything else.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "VALIDATION_ERROR",
			Message: strings.TrimPrefix(err.Error(), "validation failed: "),
		})
	case errors.Is(err, platform.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		})
	case errors.Is(err, platform.ErrNoResponse):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Status:  "error",
			Code:    "NO_RESPONSE",
			Message: "No response from server",
		})
	default:
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = fallback
			}
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Status:  "error",
				Code:    "UPSTREAM_ERROR",
				Message: msg,
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Status:  "error",
			Code:    "UPSTREAM_ERROR",
			Message: fallback,
		})
	}
}
