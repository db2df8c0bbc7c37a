package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
)

var productSortColumns = map[string]string{
	"price":     "price",
	"name":      "name",
	"createdAt": "created_at",
	"stock":     "stock",
}

type ProductInput struct {
	Name        *string          `json:"name" form:"name"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Category    *string          `json:"category" form:"category"`
	Images      []string         `json:"images" form:"images"`
	Sizes       []string         `json:"sizes" form:"sizes"`
	Stock       *int             `json:"stock" form:"stock"`
	IsActive    *bool            `json:"isActive" form:"isActive"`
	Featured    *bool            `json:"featured" form:"featured"`
}

func (in ProductInput) apply(product *models.Product) string {
	if in.Price != nil && in.Price.IsNegative() {
		return "Price cannot be negative."
	}
	if in.Stock != nil && *in.Stock < 0 {
		return "Stock cannot be negative."
	}
	assign(&product.Name, in.Name)
	assign(&product.Description, in.Description)
	assign(&product.Category, in.Category)
	assign(&product.Stock, in.Stock)
	assign(&product.IsActive, in.IsActive)
	assign(&product.Featured, in.Featured)
	if in.Price != nil {
		product.Price = in.Price.Round(2)
	}
	if in.Images != nil {
		product.Images = models.StringList(in.Images)
	}
	if in.Sizes != nil {
		product.Sizes = models.StringList(in.Sizes)
	}
	return ""
}

// uploadProductImages replaces the image list when files were sent under
// "images" and returns the old list for removal after the save.
func uploadProductImages(c *gin.Context, product *models.Product) ([]string, []string, bool) {
	uploader := middleware.GetUploader(c)
	if uploader == nil || c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, nil, true
	}

	paths, err := uploader.UploadMany(c, "images", helpers.UploadProducts)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	if len(paths) == 0 {
		return nil, nil, true
	}

	old := []string(product.Images)
	product.Images = models.StringList(paths)
	return old, paths, true
}

func ListProducts(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Product{})
	if !isAdmin(c) {
		query = query.Where("is_active = ?", true)
	} else if active := helpers.ParseBool(c, "active"); active != nil {
		query = query.Where("is_active = ?", *active)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if featured := helpers.ParseBool(c, "featured"); featured != nil {
		query = query.Where("featured = ?", *featured)
	}
	if search := c.Query("search"); search != "" {
		pattern := helpers.LikePattern(search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Product")
		return
	}

	sort := helpers.ParseSort(c, productSortColumns, helpers.Sort{Field: "createdAt", Desc: true})
	var products []models.Product
	err := query.Order(helpers.OrderClause(sort, productSortColumns)).
		Offset(p.Offset()).Limit(p.Limit).
		Find(&products).Error
	if err != nil {
		respondDBError(c, err, "Product")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("products", products, total, p))
}

func GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var product models.Product
	if err := gormDB.Where("id = ?", id).First(&product).Error; err != nil {
		respondDBError(c, err, "Product")
		return
	}
	if !product.IsActive && !isAdmin(c) {
		helpers.RespondWithError(c, http.StatusNotFound, "Product not found.")
		return
	}

	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var in ProductInput
	if !bindInput(c, &in) {
		return
	}
	if in.Name == nil || *in.Name == "" || in.Price == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	product := models.Product{IsActive: true, Images: models.StringList{}, Sizes: models.StringList{}}
	if msg := in.apply(&product); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	_, uploaded, ok := uploadProductImages(c, &product)
	if !ok {
		return
	}

	if err := gormDB.Create(&product).Error; err != nil {
		removeFiles(c, uploaded...)
		respondDBError(c, err, "Product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully.",
		"product": product,
	})
}

func UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var product models.Product
	if err := gormDB.Where("id = ?", id).First(&product).Error; err != nil {
		respondDBError(c, err, "Product")
		return
	}

	var in ProductInput
	if !bindInput(c, &in) {
		return
	}
	if msg := in.apply(&product); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if product.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty.")
		return
	}

	old, uploaded, ok := uploadProductImages(c, &product)
	if !ok {
		return
	}

	if err := gormDB.Save(&product).Error; err != nil {
		removeFiles(c, uploaded...)
		respondDBError(c, err, "Product")
		return
	}
	removeFiles(c, old...)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully.",
		"product": product,
	})
}

// DeleteProduct removes the product. Orders keep their copied item details.
func DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var product models.Product
	if err := gormDB.Where("id = ?", id).First(&product).Error; err != nil {
		respondDBError(c, err, "Product")
		return
	}
	if err := gormDB.Delete(&product).Error; err != nil {
		respondDBError(c, err, "Product")
		return
	}
	removeFiles(c, product.Images...)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}
