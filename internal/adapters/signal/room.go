package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

func (ctl *Controller) handleJoin(sid domain.ConnID, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		RoomCode string `json:"roomCode"`
		UserName string `json:"userName"`
		Role     string `json:"role"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(sid)).Str("room", p.RoomCode).Str("role", p.Role).Msg("join-room")
	// Join reports failures to the requester itself (room-error event).
	if err := ctl.Orch.Join(sid, domain.RoomCode(p.RoomCode), p.UserName, domain.Role(p.Role)); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(sid)).Str("room", p.RoomCode).Msg("join rejected")
	}
}
