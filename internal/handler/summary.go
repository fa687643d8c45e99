package handler

import (
	"fmt"
	"net/http"
	"strings"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/model"
	"bookai/backend/internal/prompt"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
)

// HandleBookSummary returns a short summary of a book
func (h *Handler) HandleBookSummary(c *gin.Context) {
	var req model.BookQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	req.Title = norm.NFC.String(strings.TrimSpace(req.Title))
	req.Author = norm.NFC.String(strings.TrimSpace(req.Author))
	if req.Title == "" || req.Author == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Title and author are required",
			"code":  "MISSING_FIELDS",
		})
		return
	}

	ctx := c.Request.Context()
	defer func() {
		if r := recover(); r != nil {
			logger.For(ctx).WithField("panic", fmt.Sprint(r)).Error("summary pipeline panicked")
			c.JSON(http.StatusOK, model.Summary{
				Title:  req.Title,
				Author: req.Author,
				Text:   prompt.GenericSummary(req.Title, req.Author),
			})
		}
	}()

	c.JSON(http.StatusOK, h.summaries.ForBook(ctx, req.Title, req.Author))
}
