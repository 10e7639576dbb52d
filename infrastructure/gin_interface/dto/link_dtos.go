package dto

import "github.com/gbessoni/selfie-fm/domain"

type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url" binding:"required"`
}

type UpdateLinkRequest struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Active   *bool   `json:"active"`
	Position *int    `json:"position"`
}

type LinkResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	URL               string `json:"url"`
	SelectedScript    string `json:"selected_script,omitempty"`
	VoiceMessageText  string `json:"voice_message_text,omitempty"`
	VoiceMessageAudio string `json:"voice_message_audio,omitempty"`
	Active            bool   `json:"active"`
	Position          int    `json:"position"`
}

func NewLinkResponse(link domain.Link) LinkResponse {
	return LinkResponse{
		ID:                link.ID,
		Title:             link.Title,
		URL:               link.URL,
		SelectedScript:    link.SelectedScript,
		VoiceMessageText:  link.VoiceMessageText,
		VoiceMessageAudio: link.VoiceMessageAudio,
		Active:            link.Active,
		Position:          link.Position,
	}
}

type GenerateScriptsResponse struct {
	Scripts []domain.ScriptCandidate `json:"scripts"`
}

type SelectScriptRequest struct {
	ScriptType string `json:"script_type"`
	CustomText string `json:"custom_text"`
	Script     string `json:"script"`
}

type SelectScriptResponse struct {
	Script string `json:"script"`
}

type WelcomeAudioRequest struct {
	Text string `json:"text" binding:"required"`
}
