package app

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/domain"
)

// Outbound event type tags. The inbound vocabulary lives in the ws adapter;
// these are the only shapes the orchestrator ever emits.
const (
	evConnected        = "connected"
	evRoomError        = "room-error"
	evMemberList       = "member-list-update"
	evSystemMessage    = "system-message"
	evMessage          = "message"
	evTranslated       = "translated-message"
	evTranslatedSign   = "translated-sign-message"
	evOffer            = "offer"
	evAnswer           = "answer"
	evCandidate        = "ice-candidate"
	evPeerDisconnected = "peer-disconnected"
)

type ConnectedEvent struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type RoomErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type MemberListEvent struct {
	Type    string           `json:"type"`
	Members []core.MemberDTO `json:"members"`
}

type SystemMessageEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ChatMessageEvent struct {
	Type string `json:"type"`
	domain.ChatMessage
}

// TranslatedMessageEvent annotates an earlier chat message. Receivers match
// it by MessageID when present, falling back to OriginalText equality.
type TranslatedMessageEvent struct {
	Type           string `json:"type"`
	UserName       string `json:"userName"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	VideoPath      string `json:"videoPath,omitempty"`
	MessageID      string `json:"messageId,omitempty"`
}

// TranslatedSignMessageEvent originates a new message (no correlation step).
type TranslatedSignMessageEvent struct {
	Type         string `json:"type"`
	UserName     string `json:"userName"`
	Text         string `json:"text"`
	OriginalText string `json:"originalText"`
}

type OfferEvent struct {
	Type     string                    `json:"type"`
	SDP      webrtc.SessionDescription `json:"sdp"`
	SenderID domain.ConnID             `json:"senderId"`
}

type AnswerEvent struct {
	Type     string                    `json:"type"`
	SDP      webrtc.SessionDescription `json:"sdp"`
	SenderID domain.ConnID             `json:"senderId"`
}

type CandidateEvent struct {
	Type      string                  `json:"type"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
	SenderID  domain.ConnID           `json:"senderId"`
}

type PeerDisconnectedEvent struct {
	Type   string        `json:"type"`
	ConnID domain.ConnID `json:"connectionId"`
}

func encode(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.events").Msg("event marshal")
		return nil, false
	}
	return core.Frame(b), true
}
