package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
)

var newsSortColumns = map[string]string{
	"publishedAt": "published_at",
	"createdAt":   "created_at",
	"views":       "views",
	"title":       "title",
}

type NewsInput struct {
	Title     *string  `json:"title" form:"title"`
	Slug      *string  `json:"slug" form:"slug"`
	Summary   *string  `json:"summary" form:"summary"`
	Content   *string  `json:"content" form:"content"`
	Category  *string  `json:"category" form:"category"`
	Tags      []string `json:"tags" form:"tags"`
	Image     *string  `json:"image" form:"image"`
	Author    *string  `json:"author" form:"author"`
	Published *bool    `json:"published" form:"published"`
}

func (in NewsInput) apply(news *models.News, now time.Time) {
	assign(&news.Title, in.Title)
	assign(&news.Summary, in.Summary)
	assign(&news.Content, in.Content)
	assign(&news.Category, in.Category)
	assign(&news.Image, in.Image)
	assign(&news.Author, in.Author)
	assign(&news.Published, in.Published)
	if in.Tags != nil {
		news.Tags = models.StringList(in.Tags)
	}
	if in.Slug != nil {
		news.Slug = helpers.Slugify(*in.Slug)
	}
	if news.Published && news.PublishedAt == nil {
		news.PublishedAt = &now
	}
}

// isAdmin reports whether the request passed the admin auth middleware.
func isAdmin(c *gin.Context) bool {
	_, exists := c.Get("user_id")
	return exists
}

func ListNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.News{})
	if !isAdmin(c) {
		query = query.Where("published = ?", true)
	} else if published := helpers.ParseBool(c, "published"); published != nil {
		query = query.Where("published = ?", *published)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if tag := c.Query("tag"); tag != "" {
		query = query.Where("tags LIKE ?", `%"`+tag+`"%`)
	}
	if search := c.Query("search"); search != "" {
		pattern := helpers.LikePattern(search)
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(summary) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "News")
		return
	}

	sort := helpers.ParseSort(c, newsSortColumns, helpers.Sort{Field: "publishedAt", Desc: true})
	var news []models.News
	err := query.Order(helpers.OrderClause(sort, newsSortColumns)).
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&news).Error
	if err != nil {
		respondDBError(c, err, "News")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("news", news, total, p))
}

func findNews(db *gorm.DB, idOrSlug string) (*models.News, error) {
	var news models.News
	query := db.Where("slug = ?", idOrSlug)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = db.Where("id = ?", id)
	}
	if err := query.First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// GetNews returns an article by id or slug. Public reads count as a view and
// never see unpublished articles.
func GetNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	news, err := findNews(gormDB, c.Param("id"))
	if err != nil {
		respondDBError(c, err, "News")
		return
	}

	if !isAdmin(c) {
		if !news.Published {
			helpers.RespondWithError(c, http.StatusNotFound, "News not found.")
			return
		}
		if err := gormDB.Model(&models.News{}).Where("id = ?", news.ID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			respondDBError(c, err, "News")
			return
		}
		news.Views++
	}

	c.JSON(http.StatusOK, news)
}

func CreateNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var in NewsInput
	if !bindInput(c, &in) {
		return
	}
	if in.Title == nil || *in.Title == "" || in.Content == nil || *in.Content == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	news := models.News{Tags: models.StringList{}}
	in.apply(&news, time.Now())
	if news.Slug == "" {
		news.Slug = helpers.Slugify(news.Title)
	}
	if news.Slug == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "News title must contain letters or digits.")
		return
	}

	image, ok := replaceUpload(c, "image", helpers.UploadNews, &news.Image)
	if !ok {
		return
	}

	if err := gormDB.Create(&news).Error; err != nil {
		image.rollback(c)
		respondDBError(c, err, "News")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "News created successfully.",
		"news":    news,
	})
}

func UpdateNews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	news, err := findNews(gormDB, id.String())
	if err != nil {
		respondDBError(c, err, "News")
		return
	}

	var in NewsInput
	if !bindInput(c, &in) {
		return
	}
	in.apply(news, time.Now())
	if news.Title == "" || news.Slug == "" || news.Content == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title, slug and content cannot be empty.")
		return
	}

	image, ok := replaceUpload(c, "image", helpers.UploadNews, &news.Image)
	if !ok {
		return
	}

	if err := gormDB.Save(news).Error; err != nil {
		image.rollback(c)
		respondDBError(c, err, "News")
		return
	}
	image.commit(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "News updated successfully.",
		"news":    news,
	})
}

func DeleteNews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var news models.News
	if err := gormDB.Where("id = ?", id).First(&news).Error; err != nil {
		respondDBError(c, err, "News")
		return
	}
	if err := gormDB.Delete(&news).Error; err != nil {
		respondDBError(c, err, "News")
		return
	}
	removeFiles(c, news.Image)

	c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully."})
}
