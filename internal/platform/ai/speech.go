package ai

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// SpeechTranscriber implements Transcriber using Google Cloud Speech-to-Text.
type SpeechTranscriber struct {
	client   *speech.Client
	language string
}

// NewSpeechTranscriber creates a transcriber authenticated with the given
// service account file. Language defaults to pt-BR when empty.
func NewSpeechTranscriber(ctx context.Context, credentialsFile, language string) (*SpeechTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating speech client: %w", err)
	}

	if language == "" {
		language = "pt-BR"
	}
	return &SpeechTranscriber{client: client, language: language}, nil
}

// Close releases the underlying client.
func (t *SpeechTranscriber) Close() error {
	return t.client.Close()
}

// Transcribe runs synchronous recognition on the audio content and joins all
// alternative transcripts into a single string.
func (t *SpeechTranscriber) Transcribe(ctx context.Context, audio []byte, fileName string) (string, error) {
	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:     encodingForFile(fileName),
			LanguageCode: t.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := t.client.Recognize(ctx, req)
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

// encodingForFile picks the recognition encoding from the file extension.
// WhatsApp voice notes arrive as Ogg Opus.
func encodingForFile(fileName string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ogg", ".opus":
		return speechpb.RecognitionConfig_OGG_OPUS
	case ".wav":
		return speechpb.RecognitionConfig_LINEAR16
	case ".mp3":
		return speechpb.RecognitionConfig_MP3
	case ".webm":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
