package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/signtalk/signtalk/internal/domain"
	"github.com/signtalk/signtalk/internal/video"
)

// BroadcastMessage fans a chat message out to every member, sender
// included; the sender's client recognizes its own copy. The returned id
// is minted here so translations can correlate without relying on text
// equality.
func (o *Orchestrator) BroadcastMessage(code domain.RoomCode, userName string, role domain.Role, text string) (string, error) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return "", domain.ErrRoomNotFound
	}
	msg := domain.ChatMessage{ID: uuid.NewString(), UserName: userName, Role: role, Text: text}
	o.broadcast(room, ChatMessageEvent{Type: evMessage, ChatMessage: msg})
	return msg.ID, nil
}

// RequestTranslation hands text to the translation service and, once it
// completes, broadcasts the result to whatever the room looks like by
// then. A failure is logged and produces no event; the room never learns
// the request existed.
func (o *Orchestrator) RequestTranslation(ctx context.Context, code domain.RoomCode, text, messageID string) {
	go o.runTranslation(ctx, code, text, messageID)
}

func (o *Orchestrator) runTranslation(ctx context.Context, code domain.RoomCode, text, messageID string) {
	translated, err := o.Translator.Translate(ctx, text)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("room", string(code)).Int("text_len", len(text)).Msg("translation failed")
		return
	}

	// No video for the translated phrase is "no video", not an error.
	path, err := o.Videos.Resolve(ctx, video.FolderKey(translated))
	if err != nil {
		log.Warn().Err(err).Str("module", "app.router").Str("room", string(code)).Msg("video resolution failed")
		path = ""
	}

	room, ok := o.Rooms.Get(code)
	if !ok {
		// Everyone left while we were translating.
		return
	}
	o.broadcast(room, TranslatedMessageEvent{
		Type:           evTranslated,
		UserName:       "translation",
		OriginalText:   text,
		TranslatedText: translated,
		VideoPath:      path,
		MessageID:      messageID,
	})
}

// BroadcastSignTranslation publishes the output of the sign-recognition
// pipeline as a fresh message; there is no originating chat message to
// annotate.
func (o *Orchestrator) BroadcastSignTranslation(code domain.RoomCode, text string) error {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return domain.ErrRoomNotFound
	}
	o.broadcast(room, TranslatedSignMessageEvent{
		Type:         evTranslatedSign,
		UserName:     "translation",
		Text:         text,
		OriginalText: text,
	})
	return nil
}
