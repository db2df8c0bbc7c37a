package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) TotalPages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}

// ParsePagination reads page and limit from the query string. Limits above
// MaxLimit are clamped instead of rejected.
func ParsePagination(c *gin.Context) (Pagination, error) {
	pageNum, err := StringToInt(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || pageNum < 1 {
		return Pagination{}, fmt.Errorf("invalid page number")
	}

	limitNum, err := StringToInt(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limitNum < 1 {
		return Pagination{}, fmt.Errorf("invalid limit")
	}
	if limitNum > MaxLimit {
		limitNum = MaxLimit
	}

	return Pagination{Page: pageNum, Limit: limitNum}, nil
}

func Paginated(key string, items any, total int64, p Pagination) gin.H {
	return gin.H{
		key:           items,
		"total":       total,
		"page":        p.Page,
		"limit":       p.Limit,
		"total_pages": p.TotalPages(total),
	}
}

type Sort struct {
	Field string
	Desc  bool
}

// ParseSort reads ?sort=field or ?sort=-field. Only keys present in allowed
// are accepted; anything else falls back to def.
func ParseSort(c *gin.Context, allowed map[string]string, def Sort) Sort {
	raw := strings.TrimSpace(c.Query("sort"))
	if raw == "" {
		return def
	}

	s := Sort{Field: strings.TrimPrefix(raw, "-"), Desc: strings.HasPrefix(raw, "-")}
	if _, ok := allowed[s.Field]; !ok {
		return def
	}
	return s
}

// OrderClause turns a Sort into an ORDER BY clause using the column mapping.
func OrderClause(s Sort, allowed map[string]string) string {
	column, ok := allowed[s.Field]
	if !ok {
		return "created_at DESC"
	}
	if s.Desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// ParseBool returns nil when the query parameter is absent or not a boolean.
func ParseBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(s string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

func LikePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
