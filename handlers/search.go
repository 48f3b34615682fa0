// File: handlers/search.go
package handlers

import (
	"net/http"

	"roamify/models"
	"roamify/services/search"
	"roamify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler exposes the progressive search endpoints.
type SearchHandler struct {
	Service search.SearchService
	Logger  *zap.Logger
}

func NewSearchHandler(svc search.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{Service: svc, Logger: logger}
}

// pollRequest optionally carries the original query so an expired session can
// be restarted transparently instead of erroring.
type pollRequest struct {
	Query *models.TravelQuery `json:"query,omitempty"`
}

// StartSearchHandler starts a new progressive search. Non-blocking: it
// returns a processing snapshot immediately.
func (h *SearchHandler) StartSearchHandler(c *gin.Context) {
	var query models.TravelQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid search request", err.Error())
		return
	}

	snap, err := h.Service.StartSearch(query)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not start search", err.Error())
		return
	}
	c.JSON(http.StatusAccepted, snap)
}

// PollSearchHandler returns the current snapshot for a session. It is
// idempotent and repeatable until the status is terminal. An unknown or
// swept session ID restarts the search when the request carries the original
// query.
func (h *SearchHandler) PollSearchHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	snap, ok := h.Service.PollSearch(sessionID)
	if ok {
		c.JSON(http.StatusOK, snap)
		return
	}

	var req pollRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Query != nil {
		h.Logger.Info("session expired, restarting search", zap.String("sessionID", sessionID))
		fresh, err := h.Service.StartSearch(*req.Query)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Could not restart search", err.Error())
			return
		}
		c.JSON(http.StatusAccepted, fresh)
		return
	}

	utils.JSONError(c, http.StatusNotFound, "Session not found or expired",
		"re-issue the search with the full query to start over")
}
