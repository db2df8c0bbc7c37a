package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
)

type VideoInput struct {
	Title       *string    `json:"title" form:"title"`
	Description *string    `json:"description" form:"description"`
	URL         *string    `json:"url" form:"url"`
	Thumbnail   *string    `json:"thumbnail" form:"thumbnail"`
	Category    *string    `json:"category" form:"category"`
	Game        *string    `json:"game" form:"game"`
	Featured    *bool      `json:"featured" form:"featured"`
	PublishedAt *time.Time `json:"publishedAt" form:"publishedAt"`
}

func (in VideoInput) apply(video *models.Video) {
	assign(&video.Title, in.Title)
	assign(&video.Description, in.Description)
	assign(&video.URL, in.URL)
	assign(&video.Thumbnail, in.Thumbnail)
	assign(&video.Category, in.Category)
	assign(&video.Game, in.Game)
	assign(&video.Featured, in.Featured)
	if in.PublishedAt != nil {
		video.PublishedAt = in.PublishedAt
	}
}

// uploadVideoFiles handles the "file" and "thumbnail" uploads of a video.
func uploadVideoFiles(c *gin.Context, video *models.Video) ([]fileChange, bool) {
	file, ok := replaceUpload(c, "file", helpers.UploadVideos, &video.File)
	if !ok {
		return nil, false
	}
	thumbnail, ok := replaceUpload(c, "thumbnail", helpers.UploadThumbnails, &video.Thumbnail)
	if !ok {
		file.rollback(c)
		return nil, false
	}
	return []fileChange{file, thumbnail}, true
}

func ListVideos(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Video{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if game := c.Query("game"); game != "" {
		query = query.Where("game = ?", game)
	}
	if featured := helpers.ParseBool(c, "featured"); featured != nil {
		query = query.Where("featured = ?", *featured)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", helpers.LikePattern(search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Video")
		return
	}

	var videos []models.Video
	err := query.Order("published_at DESC").Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&videos).Error
	if err != nil {
		respondDBError(c, err, "Video")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("videos", videos, total, p))
}

func GetVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var video models.Video
	if err := gormDB.Where("id = ?", id).First(&video).Error; err != nil {
		respondDBError(c, err, "Video")
		return
	}

	if !isAdmin(c) {
		if err := gormDB.Model(&models.Video{}).Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			respondDBError(c, err, "Video")
			return
		}
		video.Views++
	}

	c.JSON(http.StatusOK, video)
}

func CreateVideo(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var in VideoInput
	if !bindInput(c, &in) {
		return
	}
	if in.Title == nil || *in.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	now := time.Now()
	video := models.Video{PublishedAt: &now}
	in.apply(&video)

	files, ok := uploadVideoFiles(c, &video)
	if !ok {
		return
	}
	if video.URL == "" && video.File == "" {
		for _, f := range files {
			f.rollback(c)
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "A video URL or file is required.")
		return
	}

	if err := gormDB.Create(&video).Error; err != nil {
		for _, f := range files {
			f.rollback(c)
		}
		respondDBError(c, err, "Video")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Video created successfully.",
		"video":   video,
	})
}

func UpdateVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var video models.Video
	if err := gormDB.Where("id = ?", id).First(&video).Error; err != nil {
		respondDBError(c, err, "Video")
		return
	}

	var in VideoInput
	if !bindInput(c, &in) {
		return
	}
	in.apply(&video)
	if video.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title cannot be empty.")
		return
	}

	files, ok := uploadVideoFiles(c, &video)
	if !ok {
		return
	}

	if err := gormDB.Save(&video).Error; err != nil {
		for _, f := range files {
			f.rollback(c)
		}
		respondDBError(c, err, "Video")
		return
	}
	for _, f := range files {
		f.commit(c)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Video updated successfully.",
		"video":   video,
	})
}

func DeleteVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var video models.Video
	if err := gormDB.Where("id = ?", id).First(&video).Error; err != nil {
		respondDBError(c, err, "Video")
		return
	}
	if err := gormDB.Delete(&video).Error; err != nil {
		respondDBError(c, err, "Video")
		return
	}
	removeFiles(c, video.File, video.Thumbnail)

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully."})
}
