package signal

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
)

// Negotiation payloads are relayed verbatim; only the routing envelope
// (room, target) is read here.

func (ctl *Controller) handleOffer(sid domain.ConnID, data []byte) {
	type offerPayload struct {
		Type     string                    `json:"type"`
		RoomCode string                    `json:"roomCode"`
		TargetID string                    `json:"targetId"`
		SDP      webrtc.SessionDescription `json:"sdp"`
	}
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	ctl.Orch.RelayOffer(domain.RoomCode(p.RoomCode), sid, domain.ConnID(p.TargetID), p.SDP)
}

func (ctl *Controller) handleAnswer(sid domain.ConnID, data []byte) {
	type answerPayload struct {
		Type     string                    `json:"type"`
		TargetID string                    `json:"targetId"`
		SDP      webrtc.SessionDescription `json:"sdp"`
	}
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	ctl.Orch.RelayAnswer(sid, domain.ConnID(p.TargetID), p.SDP)
}

func (ctl *Controller) handleCandidate(sid domain.ConnID, data []byte) {
	type candidatePayload struct {
		Type      string                  `json:"type"`
		TargetID  string                  `json:"targetId"`
		Candidate webrtc.ICECandidateInit `json:"candidate"`
	}
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}
	ctl.Orch.RelayCandidate(sid, domain.ConnID(p.TargetID), p.Candidate)
}
