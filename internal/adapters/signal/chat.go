package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

func (ctl *Controller) handleSendMessage(sid domain.ConnID, data []byte) {
	type messagePayload struct {
		Type     string `json:"type"`
		RoomCode string `json:"roomCode"`
		UserName string `json:"userName"`
		Role     string `json:"role"`
		Text     string `json:"text"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		return
	}

	if _, err := ctl.Orch.BroadcastMessage(domain.RoomCode(p.RoomCode), p.UserName, domain.Role(p.Role), p.Text); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(sid)).Str("room", p.RoomCode).Msg("message dropped")
	}
}

func (ctl *Controller) handleTranslate(sid domain.ConnID, data []byte) {
	type translatePayload struct {
		Type      string `json:"type"`
		RoomCode  string `json:"roomCode"`
		Text      string `json:"text"`
		MessageID string `json:"messageId"`
	}
	var p translatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad translate payload")
		return
	}
	if !ctl.translations.Allow(sid) {
		log.Warn().Str("module", "signal").Str("conn", string(sid)).Msg("translation rate limited")
		return
	}

	// Background context: the translation must complete and reach the
	// room even if the requesting connection drops meanwhile.
	ctl.Orch.RequestTranslation(context.Background(), domain.RoomCode(p.RoomCode), p.Text, p.MessageID)
}
