package service

import (
	"context"
	"fmt"
	"io"

	"voxa/internal/config"
	"voxa/internal/model"
)

// 合成参数默认值
const (
	DefaultModelID         = "eleven_turbo_v2_5"
	DefaultOutputFormat    = "mp3_44100_128"
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.5
)

// SpeechUpstreamError 语音网关返回非成功状态
type SpeechUpstreamError struct {
	StatusCode  int
	StatusText  string
	ContentType string
	Details     string
}

func (e *SpeechUpstreamError) Error() string {
	return fmt.Sprintf("tts upstream failed: %d %s", e.StatusCode, e.StatusText)
}

// SpeechParams 补全默认值后的合成参数
type SpeechParams struct {
	Text            string
	VoiceID         string
	ModelID         string
	OutputFormat    string
	Stability       float64
	SimilarityBoost float64
}

// Synthesizer 语音网关
// 成功时返回音频流，调用方负责关闭
type Synthesizer interface {
	Synthesize(ctx context.Context, params *SpeechParams) (io.ReadCloser, error)
}

// SpeechService 语音合成服务
// 单次调用，不设超时，不重试
type SpeechService struct {
	cfg   *config.TTSConfig
	synth Synthesizer
}

// NewSpeechService 创建语音合成服务
func NewSpeechService(cfg *config.TTSConfig, synth Synthesizer) *SpeechService {
	return &SpeechService{
		cfg:   cfg,
		synth: synth,
	}
}

// DefaultVoiceID 请求未指定 voiceId 时使用的音色
func (s *SpeechService) DefaultVoiceID() string {
	return s.cfg.VoiceID
}

// Synthesize 合成语音
func (s *SpeechService) Synthesize(ctx context.Context, req *model.SpeechRequest) (io.ReadCloser, error) {
	if s.cfg.APIKey == "" || s.synth == nil {
		return nil, fmt.Errorf("tts api key: %w", ErrMissingCredential)
	}
	return s.synth.Synthesize(ctx, s.resolve(req))
}

// resolve 补全未设置的可选参数
// 优先级: 请求 > 配置 > 内置默认值
func (s *SpeechService) resolve(req *model.SpeechRequest) *SpeechParams {
	params := &SpeechParams{
		Text:            req.Text,
		VoiceID:         req.VoiceID,
		ModelID:         firstNonEmpty(req.ModelID, s.cfg.ModelID, DefaultModelID),
		OutputFormat:    firstNonEmpty(req.OutputFormat, s.cfg.OutputFormat, DefaultOutputFormat),
		Stability:       DefaultStability,
		SimilarityBoost: DefaultSimilarityBoost,
	}

	if s.cfg.Stability > 0 {
		params.Stability = s.cfg.Stability
	}
	if s.cfg.SimilarityBoost > 0 {
		params.SimilarityBoost = s.cfg.SimilarityBoost
	}
	if req.Stability != nil {
		params.Stability = *req.Stability
	}
	if req.SimilarityBoost != nil {
		params.SimilarityBoost = *req.SimilarityBoost
	}

	return params
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
