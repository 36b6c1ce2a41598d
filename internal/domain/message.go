package domain

// ChatMessage is ephemeral; the server keeps no copy after broadcast.
// Receivers attach the translated text and video path to their own view
// when the matching translated-message event arrives.
type ChatMessage struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	Role           Role   `json:"role"`
	Text           string `json:"text"`
	TranslatedText string `json:"translatedText,omitempty"`
	VideoPath      string `json:"videoPath,omitempty"`
}
