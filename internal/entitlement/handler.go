package entitlement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gympass/internal/api"
	"gympass/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Grant godoc
// @Summary      Grant an entitlement
// @Description  Admin-only: grant a direct gym plan or a multi-gym tier pass. Billing happens out of band.
// @Tags         admin,entitlements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GrantRequest true "Grant payload"
// @Success      201 {object} Entitlement
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/entitlements [post]
func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	e, err := h.service.Grant(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGymNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		case errors.Is(err, ErrDirectNeedsGym), errors.Is(err, ErrMultiNeedsTier), errors.Is(err, ErrInvalidKind):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to grant entitlement"})
		}
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ListMine godoc
// @Summary      List my entitlements
// @Tags         entitlements
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Entitlement
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /entitlements [get]
func (h *Handler) ListMine(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	ents, err := h.service.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch entitlements"})
		return
	}

	c.JSON(http.StatusOK, ents)
}
