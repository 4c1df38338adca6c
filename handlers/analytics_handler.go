package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naimekattor/assunnah-blog/helper"
	"github.com/naimekattor/assunnah-blog/middleware"
	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	Helper           *helper.HTTPHelper
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, Helper: &helper.HTTPHelper{}}
}

// Track accepts a page view and responds immediately; the write happens
// in the background and its failure never reaches the visitor.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	view := models.PageView{
		Path:      req.Path,
		Referrer:  req.Referrer,
		SessionID: req.SessionID,
		UserAgent: c.GetHeader("User-Agent"),
		IPAddress: clientIP(c),
	}

	if actor := middleware.ActorFrom(c); actor != nil {
		id := actor.ID
		view.UserID = &id
	}

	h.analyticsService.Track(view)

	h.Helper.SendSuccess(c, "Recorded", h.Helper.EmptyJsonMap())
}

func (h *AnalyticsHandler) Stats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := h.analyticsService.Stats(days)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Stats loaded", stats)
}

func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return c.ClientIP()
}
