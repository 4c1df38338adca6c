package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naimekattor/assunnah-blog/helper"
	"github.com/naimekattor/assunnah-blog/middleware"
	"github.com/naimekattor/assunnah-blog/services"
)

// ModerationHandler is a thin specialization over the post lifecycle:
// the pending queue plus the approve/reject transitions.
type ModerationHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewModerationHandler(postService services.PostService) *ModerationHandler {
	return &ModerationHandler{postService: postService, Helper: &helper.HTTPHelper{}}
}

func (h *ModerationHandler) Queue(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	posts, err := h.postService.PendingQueue(actor)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Moderation queue loaded", gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *ModerationHandler) Approve(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.Approve(actor, uint(id))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post approved", post)
}

func (h *ModerationHandler) Reject(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.Reject(actor, uint(id))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post rejected", post)
}
