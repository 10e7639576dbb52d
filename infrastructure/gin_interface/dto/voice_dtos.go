package dto

type CloneVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}
