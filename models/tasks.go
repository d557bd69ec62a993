// models/tasks.go
package models

// VoiceTranscriptionPayload is the queued job for transcribing a finished
// voice intro in the background.
type VoiceTranscriptionPayload struct {
	UserID   string `json:"userId"`
	VoiceURL string `json:"voiceUrl"`
}
