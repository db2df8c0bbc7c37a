package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/esports-hub/internal/middleware"
)

func Health(c *gin.Context) {
	stores := middleware.GetStores(c)
	_, dbConnected := c.Get("db")

	status := gin.H{
		"status":   "ok",
		"database": dbConnected,
	}
	if stores != nil {
		_, mock := stores.Events(c.Request.Context())
		status["mockData"] = mock
	}

	c.JSON(http.StatusOK, status)
}
