// Package intelligence wraps the cloud speech backend that turns voice
// intros into searchable transcripts.
package intelligence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cupid/config"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// maxVoiceIntroBytes caps the audio downloaded for transcription.
const maxVoiceIntroBytes = 5 * 1024 * 1024

// Transcriber turns a stored voice intro into text.
type Transcriber interface {
	TranscribeVoiceIntro(ctx context.Context, voiceURL string) (string, error)
}

// SpeechTranscriber uses Google Cloud Speech-to-Text. Voice intros are
// recorded as mono AAC on the client; the encoding here must match.
type SpeechTranscriber struct {
	LanguageCode string
	HTTPClient   *http.Client
}

// NewSpeechTranscriber returns a transcriber with the default language.
func NewSpeechTranscriber() *SpeechTranscriber {
	return &SpeechTranscriber{
		LanguageCode: "en-US",
		HTTPClient:   http.DefaultClient,
	}
}

// TranscribeVoiceIntro downloads the clip and runs a single synchronous
// recognition pass, joining all alternatives into one transcript.
func (t *SpeechTranscriber) TranscribeVoiceIntro(ctx context.Context, voiceURL string) (string, error) {
	audio, err := t.fetchAudio(ctx, voiceURL)
	if err != nil {
		return "", err
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
			LanguageCode:      t.LanguageCode,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

func (t *SpeechTranscriber) fetchAudio(ctx context.Context, voiceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, voiceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid voice intro URL: %w", err)
	}
	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download voice intro: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download voice intro: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxVoiceIntroBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read voice intro: %w", err)
	}
	return data, nil
}
