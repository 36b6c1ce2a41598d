package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

type translateRequest struct {
	Text string `json:"text" binding:"required"`
}

// Translate is the synchronous REST variant; chat translation goes
// through the ws request-translation event instead.
func (h *RoomHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}

	translated, err := h.Orch.Translator.Translate(c.Request.Context(), req.Text)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("translate endpoint")
		c.JSON(http.StatusBadGateway, gin.H{"message": "Translation service failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"translation": translated})
}

type translateVideoRequest struct {
	VideoURL string `json:"videoUrl" binding:"required"`
	RoomCode string `json:"roomCode" binding:"required"`
}

// TranslateVideo runs the sign-recognition pipeline on a recorded clip
// and publishes the recognized text to the room as a fresh message.
func (h *RoomHandler) TranslateVideo(c *gin.Context) {
	var req translateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "videoUrl and roomCode are required"})
		return
	}

	text, err := h.Orch.Translator.Recognize(c.Request.Context(), req.VideoURL)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", req.RoomCode).Msg("recognition failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "Recognition failed"})
		return
	}

	if err := h.Orch.BroadcastSignTranslation(domain.RoomCode(req.RoomCode), text); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Room does not exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"translation": text})
}
