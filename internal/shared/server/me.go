package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "no bearer token or guest id supplied", nil)
		return
	}

	isGuest := c.GetBool("isGuest")
	response := gin.H{
		"userId":  userID,
		"isGuest": isGuest,
	}
	if name := middleware.UserNameFromContext(c); name != "" {
		response["name"] = name
	}
	respond.JSON(c, http.StatusOK, response)
}
