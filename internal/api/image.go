package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/service"
)

// UploadImage stores the multipart "image" field and sets it as the
// recipe's imageUrl
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgUploadImage, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)
	header, err := c.FormFile("image")
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, msgImageTooLarge, err)
		return
	case err != nil:
		respondError(c, http.StatusBadRequest, msgUploadImage, err)
		return
	}
	if header.Size > service.MaxImageSize {
		respondError(c, http.StatusRequestEntityTooLarge, msgImageTooLarge, nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, msgUploadImage, err)
		return
	}
	defer file.Close()

	recipe, err := h.imageService.UploadRecipeImage(c.Request.Context(), id, service.ImageUpload{
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	switch {
	case errors.Is(err, service.ErrUnsupportedImageType):
		respondError(c, http.StatusBadRequest, msgUnsupportedImage, err)
	case err != nil:
		respondStoreError(c, msgUploadImage, err)
	default:
		c.JSON(http.StatusOK, recipe)
	}
}
