package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
)

// UploadFile stores a single file under the :type directory and returns its
// public path, for clients that upload before saving the record.
func UploadFile(c *gin.Context) {
	uploadType := c.Param("type")
	if !helpers.IsUploadType(uploadType) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown upload type.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "File is required.")
		return
	}

	uploader := middleware.GetUploader(c)
	if uploader == nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Uploads are not configured.")
		return
	}

	publicPath, err := uploader.UploadFile(c, fileHeader, uploadType)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully.",
		"path":    publicPath,
	})
}
