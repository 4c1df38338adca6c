package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/naimekattor/assunnah-blog/helper"
	"github.com/naimekattor/assunnah-blog/services"
)

type UploadHandler struct {
	imageService services.ImageService
	Helper       *helper.HTTPHelper
}

func NewUploadHandler(imageService services.ImageService) *UploadHandler {
	return &UploadHandler{imageService: imageService, Helper: &helper.HTTPHelper{}}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Helper.SendBadRequest(c, "No file provided", h.Helper.EmptyJsonMap())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, "Could not read file", h.Helper.EmptyJsonMap())
		return
	}
	defer file.Close()

	url, err := h.imageService.Upload(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Image uploaded", gin.H{"url": url})
}
