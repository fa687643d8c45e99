package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/model"
	"bookai/backend/internal/recommend"

	"github.com/gin-gonic/gin"
)

const defaultTrendingLimit = 8

type recommendationRequest struct {
	LibraryTitles []string `json:"library_titles"`
}

type recommendationResponse struct {
	Success bool `json:"success"`
	model.RecommendationResult
}

type trendingResponse struct {
	Success  bool                   `json:"success"`
	Trending []model.Recommendation `json:"trending"`
	Count    int                    `json:"count"`
	Error    string                 `json:"error,omitempty"`
}

// HandleUserRecommendations recommends books for a reader's library.
// Every outcome other than a malformed user ID is a 200.
func (h *Handler) HandleUserRecommendations(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "User ID must be numeric",
			"code":  "INVALID_USER_ID",
		})
		return
	}

	ctx := c.Request.Context()
	degraded := recommendationResponse{
		Success: true,
		RecommendationResult: model.RecommendationResult{
			Recommendations: []model.Recommendation{},
			Reason:          model.ReasonError,
		},
	}

	defer func() {
		if r := recover(); r != nil {
			logger.For(ctx).WithField("panic", fmt.Sprint(r)).Error("recommendation pipeline panicked")
			c.JSON(http.StatusOK, degraded)
		}
	}()

	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.For(ctx).WithError(err).Warn("undecodable recommendation request")
		c.JSON(http.StatusOK, degraded)
		return
	}

	limit := queryLimit(c, recommend.DefaultLimit)
	result := h.recommender.Recommend(ctx, userID, req.LibraryTitles, limit)
	c.JSON(http.StatusOK, recommendationResponse{Success: true, RecommendationResult: result})
}

// HandleTrending lists bestsellers. Provider failures are reported in the
// body with a 200.
func (h *Handler) HandleTrending(c *gin.Context) {
	ctx := c.Request.Context()
	limit := queryLimit(c, defaultTrendingLimit)

	books, err := h.trending.Trending(ctx, limit)
	if err != nil {
		logger.For(ctx).WithError(err).Warn("trending lookup failed")
		c.JSON(http.StatusOK, trendingResponse{
			Success:  false,
			Trending: []model.Recommendation{},
			Count:    0,
			Error:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, trendingResponse{
		Success:  true,
		Trending: books,
		Count:    len(books),
	})
}

// queryLimit reads ?limit=, falling back to def when missing, malformed
// or not positive
func queryLimit(c *gin.Context, def int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
