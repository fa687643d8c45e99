package handler

import (
	"fmt"
	"net/http"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/model"
	"bookai/backend/internal/translate"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
)

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// HandleTranslateText translates free text. A failure of both providers
// is a 200 with method none; only a pipeline panic is a 500.
func (h *Handler) HandleTranslateText(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusOK, model.TranslationResult{})
		return
	}

	// NFC so chunk boundaries never split a composed character differently
	text := norm.NFC.String(req.Text)
	source := translate.NormalizeLanguage(req.Source, translate.DefaultSource)
	target := translate.NormalizeLanguage(req.Target, translate.DefaultTarget)

	ctx := c.Request.Context()
	defer func() {
		if r := recover(); r != nil {
			logger.For(ctx).WithField("panic", fmt.Sprint(r)).Error("translation pipeline panicked")
			c.JSON(http.StatusInternalServerError, model.TranslationResult{
				Original:   req.Text,
				Translated: fmt.Sprintf("Translation error: %v", r),
				Method:     model.MethodNone,
			})
		}
	}()

	result := h.translator.Translate(ctx, text, source, target)
	result.Original = req.Text
	c.JSON(http.StatusOK, result)
}
