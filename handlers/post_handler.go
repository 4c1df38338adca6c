package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naimekattor/assunnah-blog/helper"
	"github.com/naimekattor/assunnah-blog/middleware"
	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/services"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService, Helper: &helper.HTTPHelper{}}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.Create(actor, req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Post submitted for review", post)
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	posts, total, err := h.postService.List(actor, params)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Posts loaded", gin.H{
		"posts":      posts,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

// GetPost resolves the path parameter as a numeric id first and falls
// back to slug lookup, so both /posts/42 and /posts/my-first-post work.
func (h *PostHandler) GetPost(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	ref := c.Param("id")

	var post *models.Post
	var err error
	if id, parseErr := strconv.ParseUint(ref, 10, 32); parseErr == nil {
		post, err = h.postService.Get(actor, uint(id))
	} else {
		post, err = h.postService.GetBySlug(actor, ref)
	}
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post loaded", post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	post, err := h.postService.Update(actor, uint(id), req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post updated", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.postService.Delete(actor, uint(id)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post deleted", h.Helper.EmptyJsonMap())
}
