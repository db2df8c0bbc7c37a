package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
)

type TeamInput struct {
	Name         *string  `json:"name" form:"name"`
	GameID       *string  `json:"gameId" form:"gameId"`
	Description  *string  `json:"description" form:"description"`
	Logo         *string  `json:"logo" form:"logo"`
	Achievements []string `json:"achievements" form:"achievements"`
	IsActive     *bool    `json:"isActive" form:"isActive"`
}

func (in TeamInput) apply(team *models.Team) string {
	if in.GameID != nil {
		gameID, ok := optionalUUID(in.GameID)
		if !ok {
			return "Invalid game ID."
		}
		team.GameID = gameID
		team.Game = nil
	}
	assign(&team.Name, in.Name)
	assign(&team.Description, in.Description)
	assign(&team.Logo, in.Logo)
	assign(&team.IsActive, in.IsActive)
	if in.Achievements != nil {
		team.Achievements = models.StringList(in.Achievements)
	}
	return ""
}

func gameExists(db *gorm.DB, id *uuid.UUID) (bool, error) {
	if id == nil {
		return true, nil
	}
	var count int64
	if err := db.Model(&models.Game{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func ListTeams(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Team{})
	if raw := c.Query("game"); raw != "" {
		gameID, err := uuid.Parse(raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid game ID.")
			return
		}
		query = query.Where("game_id = ?", gameID)
	}
	if active := helpers.ParseBool(c, "active"); active != nil {
		query = query.Where("is_active = ?", *active)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ?", helpers.LikePattern(search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Team")
		return
	}

	var teams []models.Team
	if err := query.Preload("Game").Order("name ASC").Offset(p.Offset()).Limit(p.Limit).Find(&teams).Error; err != nil {
		respondDBError(c, err, "Team")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("teams", teams, total, p))
}

func GetTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var team models.Team
	err := gormDB.Preload("Game").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Where("id = ?", id).First(&team).Error
	if err != nil {
		respondDBError(c, err, "Team")
		return
	}

	c.JSON(http.StatusOK, team)
}

func CreateTeam(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var in TeamInput
	if !bindInput(c, &in) {
		return
	}
	if in.Name == nil || *in.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	team := models.Team{IsActive: true, Achievements: models.StringList{}}
	if msg := in.apply(&team); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if exists, err := gameExists(gormDB, team.GameID); err != nil {
		respondDBError(c, err, "Team")
		return
	} else if !exists {
		helpers.RespondWithError(c, http.StatusBadRequest, "Game not found.")
		return
	}

	logo, ok := replaceUpload(c, "logo", helpers.UploadTeams, &team.Logo)
	if !ok {
		return
	}

	if err := gormDB.Create(&team).Error; err != nil {
		logo.rollback(c)
		respondDBError(c, err, "Team")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Team created successfully.",
		"team":    team,
	})
}

func UpdateTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var team models.Team
	if err := gormDB.Where("id = ?", id).First(&team).Error; err != nil {
		respondDBError(c, err, "Team")
		return
	}

	var in TeamInput
	if !bindInput(c, &in) {
		return
	}
	if msg := in.apply(&team); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if team.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty.")
		return
	}
	if exists, err := gameExists(gormDB, team.GameID); err != nil {
		respondDBError(c, err, "Team")
		return
	} else if !exists {
		helpers.RespondWithError(c, http.StatusBadRequest, "Game not found.")
		return
	}

	logo, ok := replaceUpload(c, "logo", helpers.UploadTeams, &team.Logo)
	if !ok {
		return
	}

	if err := gormDB.Omit("Game", "Members").Save(&team).Error; err != nil {
		logo.rollback(c)
		respondDBError(c, err, "Team")
		return
	}
	logo.commit(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Team updated successfully.",
		"team":    team,
	})
}

// DeleteTeam removes the team; its members stay and lose their team.
func DeleteTeam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var team models.Team
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&team).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Member{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		respondDBError(c, err, "Team")
		return
	}
	removeFiles(c, team.Logo)

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully."})
}

type GameInput struct {
	Name        *string `json:"name" form:"name"`
	Slug        *string `json:"slug" form:"slug"`
	Description *string `json:"description" form:"description"`
	Logo        *string `json:"logo" form:"logo"`
	IsActive    *bool   `json:"isActive" form:"isActive"`
}

func (in GameInput) apply(game *models.Game) {
	assign(&game.Name, in.Name)
	assign(&game.Description, in.Description)
	assign(&game.Logo, in.Logo)
	assign(&game.IsActive, in.IsActive)
	if in.Slug != nil {
		game.Slug = helpers.Slugify(*in.Slug)
	}
}

func findGame(db *gorm.DB, idOrSlug string) (*models.Game, error) {
	var game models.Game
	query := db.Where("slug = ?", idOrSlug)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = db.Where("id = ?", id)
	}
	if err := query.First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func ListGames(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Game{})
	if active := helpers.ParseBool(c, "active"); active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var games []models.Game
	if err := query.Order("name ASC").Find(&games).Error; err != nil {
		respondDBError(c, err, "Game")
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

func GetGame(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	game, err := findGame(gormDB, c.Param("id"))
	if err != nil {
		respondDBError(c, err, "Game")
		return
	}

	c.JSON(http.StatusOK, game)
}

func CreateGame(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var in GameInput
	if !bindInput(c, &in) {
		return
	}
	if in.Name == nil || *in.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	game := models.Game{IsActive: true}
	in.apply(&game)
	if game.Slug == "" {
		game.Slug = helpers.Slugify(game.Name)
	}

	logo, ok := replaceUpload(c, "logo", helpers.UploadGames, &game.Logo)
	if !ok {
		return
	}

	if err := gormDB.Create(&game).Error; err != nil {
		logo.rollback(c)
		respondDBError(c, err, "Game")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Game created successfully.",
		"game":    game,
	})
}

func UpdateGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	game, err := findGame(gormDB, id.String())
	if err != nil {
		respondDBError(c, err, "Game")
		return
	}

	var in GameInput
	if !bindInput(c, &in) {
		return
	}
	in.apply(game)
	if game.Name == "" || game.Slug == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name and slug cannot be empty.")
		return
	}

	logo, ok := replaceUpload(c, "logo", helpers.UploadGames, &game.Logo)
	if !ok {
		return
	}

	if err := gormDB.Save(game).Error; err != nil {
		logo.rollback(c)
		respondDBError(c, err, "Game")
		return
	}
	logo.commit(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Game updated successfully.",
		"game":    game,
	})
}

func DeleteGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var game models.Game
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&game).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Team{}).Where("game_id = ?", id).Update("game_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&game).Error
	})
	if err != nil {
		respondDBError(c, err, "Game")
		return
	}
	removeFiles(c, game.Logo)

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully."})
}
