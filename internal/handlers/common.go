package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
)

// DataSourceHeader marks responses served from the in-memory mock dataset.
const DataSourceHeader = "X-Data-Source"

func getDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Database is unavailable.")
		return nil, false
	}
	return db.(*gorm.DB).WithContext(c.Request.Context()), true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ID.")
		return uuid.Nil, false
	}
	return id, true
}

func bindInput(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		helpers.RespondWithBindingError(c, err)
		return false
	}
	return true
}

func parsePagination(c *gin.Context) (helpers.Pagination, bool) {
	p, err := helpers.ParsePagination(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return helpers.Pagination{}, false
	}
	return p, true
}

// respondDBError maps a gorm error to 404, 409 or a logged 500.
func respondDBError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, entity+" not found.")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		helpers.RespondWithError(c, http.StatusConflict, entity+" already exists.")
	default:
		middleware.GetLogger(c).Error("Database operation failed",
			zap.String("entity", entity),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to process "+entity+".")
	}
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func optionalUUID(raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// fileChange records a file replaced by an upload. Commit removes the old
// file once the record is saved, rollback removes the new one.
type fileChange struct {
	old, new string
}

func (f fileChange) commit(c *gin.Context) {
	if f.new != "" {
		removeFiles(c, f.old)
	}
}

func (f fileChange) rollback(c *gin.Context) {
	removeFiles(c, f.new)
}

// replaceUpload uploads the file in field, if any, and stores its public
// path in dst.
func replaceUpload(c *gin.Context, field, uploadType string, dst *string) (fileChange, bool) {
	uploader := middleware.GetUploader(c)
	if uploader == nil {
		return fileChange{}, true
	}

	publicPath, uploaded, err := uploader.UploadIfPresent(c, field, uploadType)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return fileChange{}, false
	}
	if !uploaded {
		return fileChange{}, true
	}

	change := fileChange{old: *dst, new: publicPath}
	*dst = publicPath
	return change, true
}

func removeFiles(c *gin.Context, paths ...string) {
	uploader := middleware.GetUploader(c)
	if uploader == nil {
		return
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := uploader.DeleteFile(p); err != nil {
			middleware.GetLogger(c).Warn("Failed to remove uploaded file", zap.String("path", p), zap.Error(err))
		}
	}
}
