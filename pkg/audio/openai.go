package audio

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sashabaranov/go-openai"
)

// OpenAIParams defines parameters for NewOpenAISpeaker
type OpenAIParams struct {
	APIKey   string
	Endpoint string // base url of an OpenAI compatible api, default used if empty
	Model    string
	Voice    string
}

// OpenAISpeaker synthesizes speech with the OpenAI audio api
type OpenAISpeaker struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// NewOpenAISpeaker makes a speaker, model defaults to tts-1 and voice to alloy
func NewOpenAISpeaker(params OpenAIParams) *OpenAISpeaker {
	clientConfig := openai.DefaultConfig(params.APIKey)
	if params.Endpoint != "" {
		clientConfig.BaseURL = params.Endpoint
	}
	res := &OpenAISpeaker{
		client: openai.NewClientWithConfig(clientConfig),
		model:  openai.TTSModel1,
		voice:  openai.VoiceAlloy,
	}
	if params.Model != "" {
		res.model = openai.SpeechModel(params.Model)
	}
	if params.Voice != "" {
		res.voice = openai.SpeechVoice(params.Voice)
	}
	return res
}

// Synthesize writes mp3 speech for text to path. The language is detected by the backend.
func (s *OpenAISpeaker) Synthesize(ctx context.Context, text, _, path string) error {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	fh, err := os.Create(path) //nolint:gosec // path is built by the renderer
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err = io.Copy(fh, resp); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write speech: %w", err)
	}
	if err = fh.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
