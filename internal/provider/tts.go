package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"

	"voxa/internal/pkg/elevenlabs"
	"voxa/internal/pkg/tts"
	"voxa/internal/service"
)

// ElevenLabsSynthesizer ElevenLabs 语音网关
// 实现了 service.Synthesizer 接口
type ElevenLabsSynthesizer struct {
	client *elevenlabs.Client
}

// NewElevenLabsSynthesizer 创建 ElevenLabs 网关
func NewElevenLabsSynthesizer(client *elevenlabs.Client) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{client: client}
}

// Synthesize 返回上游音频流，不做缓冲
func (p *ElevenLabsSynthesizer) Synthesize(ctx context.Context, params *service.SpeechParams) (io.ReadCloser, error) {
	body, err := p.client.Stream(ctx, &elevenlabs.StreamRequest{
		Text:            params.Text,
		VoiceID:         params.VoiceID,
		ModelID:         params.ModelID,
		OutputFormat:    params.OutputFormat,
		Stability:       params.Stability,
		SimilarityBoost: params.SimilarityBoost,
	})
	if err != nil {
		var upstreamErr *elevenlabs.UpstreamError
		if errors.As(err, &upstreamErr) {
			return nil, &service.SpeechUpstreamError{
				StatusCode:  upstreamErr.StatusCode,
				StatusText:  upstreamErr.StatusText,
				ContentType: upstreamErr.ContentType,
				Details:     upstreamErr.Details,
			}
		}
		return nil, err
	}
	return body, nil
}

// VolcanoSynthesizer 火山引擎语音网关（使用 pkg/tts 的 Client）
// voiceId 对应 voice_type，模型与音色参数不适用
type VolcanoSynthesizer struct {
	client *tts.Client
}

// NewVolcanoSynthesizer 创建火山引擎网关
func NewVolcanoSynthesizer(client *tts.Client) *VolcanoSynthesizer {
	return &VolcanoSynthesizer{client: client}
}

// Synthesize 合成并返回 mp3 音频
func (p *VolcanoSynthesizer) Synthesize(ctx context.Context, params *service.SpeechParams) (io.ReadCloser, error) {
	audio, err := p.client.Synthesize(ctx, params.Text, params.VoiceID, 1.0)
	if err != nil {
		var apiErr *tts.APIError
		if errors.As(err, &apiErr) {
			details := apiErr.Message
			if apiErr.Code != 0 {
				details = strconv.Itoa(apiErr.Code) + ": " + apiErr.Message
			}
			return nil, &service.SpeechUpstreamError{
				StatusCode:  apiErr.HTTPStatus,
				StatusText:  apiErr.StatusText,
				ContentType: apiErr.ContentType,
				Details:     details,
			}
		}
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(audio)), nil
}
