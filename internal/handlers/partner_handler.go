package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
)

var (
	partnerTypes = []string{models.PartnerTypePartner, models.PartnerTypeSponsor}
	partnerTiers = []string{"platinum", "gold", "silver", "bronze", "community"}
)

type PartnerInput struct {
	Name         *string `json:"name" form:"name"`
	Type         *string `json:"type" form:"type"`
	Tier         *string `json:"tier" form:"tier"`
	Logo         *string `json:"logo" form:"logo"`
	Website      *string `json:"website" form:"website"`
	Description  *string `json:"description" form:"description"`
	IsActive     *bool   `json:"isActive" form:"isActive"`
	DisplayOrder *int    `json:"displayOrder" form:"displayOrder"`
}

func (in PartnerInput) apply(partner *models.Partner) string {
	if in.Type != nil && !slices.Contains(partnerTypes, *in.Type) {
		return "Invalid partner type."
	}
	if in.Tier != nil && *in.Tier != "" && !slices.Contains(partnerTiers, *in.Tier) {
		return "Invalid partner tier."
	}
	assign(&partner.Name, in.Name)
	assign(&partner.Type, in.Type)
	assign(&partner.Tier, in.Tier)
	assign(&partner.Logo, in.Logo)
	assign(&partner.Website, in.Website)
	assign(&partner.Description, in.Description)
	assign(&partner.IsActive, in.IsActive)
	assign(&partner.DisplayOrder, in.DisplayOrder)
	return ""
}

func ListPartners(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Partner{})
	if partnerType := c.Query("type"); partnerType != "" {
		query = query.Where("type = ?", partnerType)
	}
	if tier := c.Query("tier"); tier != "" {
		query = query.Where("tier = ?", tier)
	}
	if !isAdmin(c) {
		query = query.Where("is_active = ?", true)
	} else if active := helpers.ParseBool(c, "active"); active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var partners []models.Partner
	if err := query.Order("display_order ASC").Order("name ASC").Find(&partners).Error; err != nil {
		respondDBError(c, err, "Partner")
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

func GetPartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var partner models.Partner
	if err := gormDB.Where("id = ?", id).First(&partner).Error; err != nil {
		respondDBError(c, err, "Partner")
		return
	}

	c.JSON(http.StatusOK, partner)
}

func CreatePartner(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var in PartnerInput
	if !bindInput(c, &in) {
		return
	}
	if in.Name == nil || *in.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	partner := models.Partner{Type: models.PartnerTypePartner, IsActive: true}
	if msg := in.apply(&partner); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	logo, ok := replaceUpload(c, "logo", helpers.UploadPartners, &partner.Logo)
	if !ok {
		return
	}

	if err := gormDB.Create(&partner).Error; err != nil {
		logo.rollback(c)
		respondDBError(c, err, "Partner")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Partner created successfully.",
		"partner": partner,
	})
}

func UpdatePartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var partner models.Partner
	if err := gormDB.Where("id = ?", id).First(&partner).Error; err != nil {
		respondDBError(c, err, "Partner")
		return
	}

	var in PartnerInput
	if !bindInput(c, &in) {
		return
	}
	if msg := in.apply(&partner); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if partner.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty.")
		return
	}

	logo, ok := replaceUpload(c, "logo", helpers.UploadPartners, &partner.Logo)
	if !ok {
		return
	}

	if err := gormDB.Save(&partner).Error; err != nil {
		logo.rollback(c)
		respondDBError(c, err, "Partner")
		return
	}
	logo.commit(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Partner updated successfully.",
		"partner": partner,
	})
}

func DeletePartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var partner models.Partner
	if err := gormDB.Where("id = ?", id).First(&partner).Error; err != nil {
		respondDBError(c, err, "Partner")
		return
	}
	if err := gormDB.Delete(&partner).Error; err != nil {
		respondDBError(c, err, "Partner")
		return
	}
	removeFiles(c, partner.Logo)

	c.JSON(http.StatusOK, gin.H{"message": "Partner deleted successfully."})
}
