package handlers

import (
	"errors"
	"net/http"

	"bridgefacile-backend/service"

	"github.com/gin-gonic/gin"
)

// NavigationHandler handles HTTP requests for navigation sessions
type NavigationHandler struct {
	nav *service.NavigationService
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(nav *service.NavigationService) *NavigationHandler {
	return &NavigationHandler{nav: nav}
}

// NavigateRequest is the body of POST /api/sessions/:id/navigate
type NavigateRequest struct {
	LawNumber string `json:"law_number" binding:"required"`
	Context   string `json:"context"`
}

// BookmarkRequest is the body of POST /api/sessions/:id/bookmarks
type BookmarkRequest struct {
	LawNumber string `json:"law_number" binding:"required"`
}

// Navigate handles POST /api/sessions/:id/navigate
func (h *NavigationHandler) Navigate(c *gin.Context) {
	sessionID := c.Param("id")

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.nav.NavigateTo(c.Request.Context(), sessionID, req.LawNumber, req.Context)
	if err != nil {
		h.respondNavigationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Back handles POST /api/sessions/:id/back
func (h *NavigationHandler) Back(c *gin.Context) {
	result, err := h.nav.GoBack(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondNavigationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Forward handles POST /api/sessions/:id/forward
func (h *NavigationHandler) Forward(c *gin.Context) {
	result, err := h.nav.GoForward(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondNavigationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ExportSession handles GET /api/sessions/:id
func (h *NavigationHandler) ExportSession(c *gin.Context) {
	session, err := h.nav.ExportSession(c.Param("id"))
	if err != nil {
		h.respondNavigationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// AddBookmark handles POST /api/sessions/:id/bookmarks
func (h *NavigationHandler) AddBookmark(c *gin.Context) {
	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	h.nav.AddBookmark(c.Param("id"), req.LawNumber)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"law_number": req.LawNumber,
		},
	})
}

// RemoveBookmark handles DELETE /api/sessions/:id/bookmarks/:number
func (h *NavigationHandler) RemoveBookmark(c *gin.Context) {
	err := h.nav.RemoveBookmark(c.Param("id"), c.Param("number"))
	if err != nil {
		h.respondNavigationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func (h *NavigationHandler) respondNavigationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLawNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LAW_NOT_FOUND",
				"message": "Law not found",
			},
		})
	case errors.Is(err, service.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_NOT_FOUND",
				"message": "Session not found",
			},
		})
	case errors.Is(err, service.ErrCannotGoBack):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CANNOT_GO_BACK",
				"message": "No previous law in session history",
			},
		})
	case errors.Is(err, service.ErrCannotGoForward):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CANNOT_GO_FORWARD",
				"message": "No next law in session history",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
	}
}
