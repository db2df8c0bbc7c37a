package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/store"
)

var memberRoles = []string{"player", "coach", "manager", "content_creator", "staff"}

type SocialsInput struct {
	Twitter   *string `json:"twitter" form:"twitter"`
	Twitch    *string `json:"twitch" form:"twitch"`
	YouTube   *string `json:"youtube" form:"youtube"`
	Instagram *string `json:"instagram" form:"instagram"`
}

type MemberInput struct {
	Name         *string       `json:"name" form:"name"`
	Nickname     *string       `json:"nickname" form:"nickname"`
	Role         *string       `json:"role" form:"role"`
	TeamID       *string       `json:"teamId" form:"teamId"`
	Game         *string       `json:"game" form:"game"`
	Country      *string       `json:"country" form:"country"`
	Bio          *string       `json:"bio" form:"bio"`
	Photo        *string       `json:"photo" form:"photo"`
	Socials      *SocialsInput `json:"socials"`
	Achievements []string      `json:"achievements" form:"achievements"`
	IsActive     *bool         `json:"isActive" form:"isActive"`
	DisplayOrder *int          `json:"displayOrder" form:"displayOrder"`
	JoinedAt     *time.Time    `json:"joinedAt" form:"joinedAt"`
}

func (in MemberInput) apply(member *models.Member) string {
	if in.Role != nil && !slices.Contains(memberRoles, *in.Role) {
		return "Invalid member role."
	}
	if in.TeamID != nil {
		teamID, ok := optionalUUID(in.TeamID)
		if !ok {
			return "Invalid team ID."
		}
		member.TeamID = teamID
	}

	assign(&member.Name, in.Name)
	assign(&member.Nickname, in.Nickname)
	assign(&member.Role, in.Role)
	assign(&member.Game, in.Game)
	assign(&member.Country, in.Country)
	assign(&member.Bio, in.Bio)
	assign(&member.Photo, in.Photo)
	assign(&member.IsActive, in.IsActive)
	assign(&member.DisplayOrder, in.DisplayOrder)
	if in.Socials != nil {
		assign(&member.Socials.Twitter, in.Socials.Twitter)
		assign(&member.Socials.Twitch, in.Socials.Twitch)
		assign(&member.Socials.YouTube, in.Socials.YouTube)
		assign(&member.Socials.Instagram, in.Socials.Instagram)
	}
	if in.Achievements != nil {
		member.Achievements = models.StringList(in.Achievements)
	}
	if in.JoinedAt != nil {
		member.JoinedAt = in.JoinedAt
	}
	return ""
}

// teamFound answers 400 when a database-backed member points at a missing
// team. Mock members are not checked since mock data has no teams.
func teamFound(c *gin.Context, mock bool, teamID *uuid.UUID) bool {
	if mock || teamID == nil {
		return true
	}
	gormDB, ok := getDB(c)
	if !ok {
		return false
	}

	var count int64
	if err := gormDB.Model(&models.Team{}).Where("id = ?", *teamID).Count(&count).Error; err != nil {
		respondDBError(c, err, "Team")
		return false
	}
	if count == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Team not found.")
		return false
	}
	return true
}

func ListMembers(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	var teamID *uuid.UUID
	if raw := c.Query("team"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid team ID.")
			return
		}
		teamID = &id
	}

	sort := helpers.ParseSort(c, store.MemberSortColumns, helpers.Sort{Field: "displayOrder"})
	filter := store.MemberFilter{
		Role:   c.Query("role"),
		Game:   c.Query("game"),
		TeamID: teamID,
		Active: helpers.ParseBool(c, "active"),
		Search: c.Query("search"),
		Sort:   store.SortField{Field: sort.Field, Desc: sort.Desc},
		Page:   store.Page{Offset: p.Offset(), Limit: p.Limit},
	}

	members, _ := memberStore(c)
	items, total, err := members.ListMembers(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "Member")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("members", items, total, p))
}

func GetMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	members, _ := memberStore(c)
	member, err := members.GetMember(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Member")
		return
	}

	c.JSON(http.StatusOK, member)
}

func CreateMember(c *gin.Context) {
	var in MemberInput
	if !bindInput(c, &in) {
		return
	}
	if in.Name == nil || *in.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	member := models.Member{Role: "player", IsActive: true, Achievements: models.StringList{}}
	if msg := in.apply(&member); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	members, mock := memberStore(c)
	if !teamFound(c, mock, member.TeamID) {
		return
	}

	photo, ok := replaceUpload(c, "photo", helpers.UploadMembers, &member.Photo)
	if !ok {
		return
	}

	if err := members.CreateMember(c.Request.Context(), &member); err != nil {
		photo.rollback(c)
		respondStoreError(c, err, "Member")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member created successfully.",
		"member":  member,
	})
}

func UpdateMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	members, mock := memberStore(c)
	member, err := members.GetMember(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Member")
		return
	}

	var in MemberInput
	if !bindInput(c, &in) {
		return
	}
	if msg := in.apply(member); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if member.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty.")
		return
	}
	if in.TeamID != nil && !teamFound(c, mock, member.TeamID) {
		return
	}

	photo, ok := replaceUpload(c, "photo", helpers.UploadMembers, &member.Photo)
	if !ok {
		return
	}

	if err := members.UpdateMember(c.Request.Context(), member); err != nil {
		photo.rollback(c)
		respondStoreError(c, err, "Member")
		return
	}
	photo.commit(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Member updated successfully.",
		"member":  member,
	})
}

func DeleteMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	members, _ := memberStore(c)
	member, err := members.GetMember(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Member")
		return
	}

	if err := members.DeleteMember(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Member")
		return
	}
	removeFiles(c, member.Photo)

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully."})
}
