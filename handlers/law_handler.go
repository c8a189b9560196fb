package handlers

import (
	"net/http"
	"strconv"

	"bridgefacile-backend/models"
	"bridgefacile-backend/service"

	"github.com/gin-gonic/gin"
)

// LawHandler handles HTTP requests for law lookup and search
type LawHandler struct {
	engine *service.CrossRefEngine
	nav    *service.NavigationService
	search *service.SearchService
}

// NewLawHandler creates a new law handler
func NewLawHandler(engine *service.CrossRefEngine, nav *service.NavigationService, search *service.SearchService) *LawHandler {
	return &LawHandler{
		engine: engine,
		nav:    nav,
		search: search,
	}
}

// GetLaw handles GET /api/laws/:number
func (h *LawHandler) GetLaw(c *gin.Context) {
	lawNumber := c.Param("number")

	law, err := h.engine.Resolve(c.Request.Context(), lawNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	if law == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LAW_NOT_FOUND",
				"message": "Law not found",
			},
		})
		return
	}

	related, err := h.engine.RelatedLaws(c.Request.Context(), law, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	clickable, err := h.engine.ClickableContent(c.Request.Context(), law.Content, law.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"law":               law,
			"clickable_content": clickable,
			"related_laws":      related,
		},
	})
}

// Search handles GET /api/search
func (h *LawHandler) Search(c *gin.Context) {
	query := c.Query("q")

	filters := models.SearchFilters{
		Category:   c.Query("category"),
		SourceFile: c.Query("source_file"),
	}
	if minChars := c.Query("min_chars"); minChars != "" {
		n, err := strconv.Atoi(minChars)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_MIN_CHARS",
					"message": "min_chars must be an integer",
				},
			})
			return
		}
		filters.MinCharCount = n
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_LIMIT",
					"message": "limit must be an integer",
				},
			})
			return
		}
		limit = n
	}

	// session_id is optional; when present the query lands in that
	// session's search history
	result, err := h.nav.Search(c.Request.Context(), c.Query("session_id"), query, filters, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SEARCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Suggest handles GET /api/laws/suggest
func (h *LawHandler) Suggest(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_PREFIX",
				"message": "prefix query parameter is required",
			},
		})
		return
	}

	suggestions, err := h.search.Suggest(c.Request.Context(), prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SUGGEST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"suggestions": suggestions,
		},
	})
}
