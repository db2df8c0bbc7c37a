package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	auth := middleware.GetAuthSettings(c)
	tokenString, err := helpers.IssueToken(auth.JWTSecret, user.ID, user.Role, auth.TokenTTL)
	if err != nil {
		middleware.GetLogger(c).Error("Failed to issue token", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		respondDBError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, user)
}

func ListUsers(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var users []models.User
	if err := gormDB.Order("created_at ASC").Find(&users).Error; err != nil {
		respondDBError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}
	if !slices.Contains([]string{models.RoleAdmin, models.RoleEditor}, req.Role) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid role.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing int64
	if err := gormDB.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		respondDBError(c, err, "User")
		return
	}
	if existing > 0 {
		helpers.RespondWithError(c, http.StatusConflict, "User already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Role:     req.Role,
	}
	if err := gormDB.Create(&user).Error; err != nil {
		respondDBError(c, err, "User")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}

func DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if currentID, _ := c.Get("user_id"); currentID == id {
		helpers.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		respondDBError(c, result.Error, "User")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
