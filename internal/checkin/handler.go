package checkin

import (
	"errors"
	"net/http"
	"strconv"

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

// RequestCheckIn godoc
// @Summary      Request a check-in
// @Description  Creates a pending check-in at the gym, gated on an active entitlement. Gym staff are notified in real time.
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Param        gymID  path      int  true  "Gym ID"
// @Success      201    {object}  CheckIn
// @Failure      400    {object}  api.ErrorResponse
// @Failure      403    {object}  api.ErrorResponse
// @Failure      404    {object}  api.ErrorResponse
// @Failure      409    {object}  api.ErrorResponse
// @Failure      500    {object}  api.ErrorResponse
// @Router       /gyms/{gymID}/checkin [post]
func (h *Handler) RequestCheckIn(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	created, err := h.service.RequestCheckIn(c.Request.Context(), identity.UserID, gymID)
	if err != nil {
		var noEnt *NoEntitlementError
		switch {
		case errors.Is(err, ErrGymNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		case errors.Is(err, ErrAlreadyCheckedIn):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You already have an open check-in at this gym"})
		case errors.As(err, &noEnt):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: noEnt.Error(), Reason: string(noEnt.Reason)})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check in"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// CheckOut godoc
// @Summary      Check out
// @Description  Closes the member's own open check-in.
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Param        checkInID  path      int  true  "Check-in ID"
// @Success      200        {object}  CheckIn
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      500        {object}  api.ErrorResponse
// @Router       /checkins/{checkInID}/checkout [post]
func (h *Handler) CheckOut(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	checkInID, err := strconv.Atoi(c.Param("checkInID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid check-in ID"})
		return
	}

	closed, err := h.service.CheckOut(c.Request.Context(), identity.UserID, checkInID)
	if err != nil {
		if errors.Is(err, ErrNoActiveCheckIn) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No active check-in"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check out"})
		return
	}

	c.JSON(http.StatusOK, closed)
}

// ListMyCheckIns godoc
// @Summary      List my check-ins
// @Tags         checkins
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   CheckIn
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /checkins [get]
func (h *Handler) ListMyCheckIns(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	checkIns, err := h.service.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	c.JSON(http.StatusOK, checkIns)
}

// ListPending godoc
// @Summary      List pending check-ins at a gym
// @Description  Staff-only: the caller must manage the gym.
// @Tags         staff,checkins
// @Security     BearerAuth
// @Produce      json
// @Param        gymID  path      int  true  "Gym ID"
// @Success      200    {array}   CheckInWithDetails
// @Failure      400    {object}  api.ErrorResponse
// @Failure      403    {object}  api.ErrorResponse
// @Failure      404    {object}  api.ErrorResponse
// @Router       /staff/gyms/{gymID}/checkins/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	pending, err := h.service.ListPending(c.Request.Context(), gymID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGymNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not manage this gym"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch pending check-ins"})
		}
		return
	}

	c.JSON(http.StatusOK, pending)
}

// Verify godoc
// @Summary      Verify a pending check-in
// @Description  Staff-only: marks the check-in verified and notifies the member.
// @Tags         staff,checkins
// @Security     BearerAuth
// @Produce      json
// @Param        checkInID  path      int  true  "Check-in ID"
// @Success      200        {object}  CheckIn
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /staff/checkins/{checkInID}/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	h.decide(c, StatusVerified)
}

// Reject godoc
// @Summary      Reject a pending check-in
// @Description  Staff-only: marks the check-in rejected and notifies the member.
// @Tags         staff,checkins
// @Security     BearerAuth
// @Produce      json
// @Param        checkInID  path      int  true  "Check-in ID"
// @Success      200        {object}  CheckIn
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /staff/checkins/{checkInID}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, StatusRejected)
}

func (h *Handler) decide(c *gin.Context, status Status) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	checkInID, err := strconv.Atoi(c.Param("checkInID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid check-in ID"})
		return
	}

	var decided *CheckIn
	if status == StatusVerified {
		decided, err = h.service.Verify(c.Request.Context(), checkInID, identity.UserID)
	} else {
		decided, err = h.service.Reject(c.Request.Context(), checkInID, identity.UserID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrCheckInNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Check-in not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not manage this gym"})
		case errors.Is(err, ErrAlreadyDecided):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Check-in already decided or closed"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, decided)
}
