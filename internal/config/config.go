package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	TTS    TTSConfig    `mapstructure:"tts"`
	Proxy  ProxyConfig  `mapstructure:"proxy"`
	Log    LogConfig    `mapstructure:"log"`
	Debug  DebugConfig  `mapstructure:"debug"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LLMConfig 对话模型网关配置
type LLMConfig struct {
	Provider string           `mapstructure:"provider"` // openrouter, openai, azure, ark
	APIKey   string           `mapstructure:"api_key"`
	Model    string           `mapstructure:"model"`
	BaseURL  string           `mapstructure:"base_url"`
	Referer  string           `mapstructure:"referer"` // OpenRouter HTTP-Referer
	Title    string           `mapstructure:"title"`   // OpenRouter X-Title
	Timeout  time.Duration    `mapstructure:"timeout"` // 上游调用硬超时
	Options  LLMOptionsConfig `mapstructure:"options"`
}

// LLMOptionsConfig 模型参数
type LLMOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// TTSConfig 语音合成网关配置
type TTSConfig struct {
	Provider        string  `mapstructure:"provider"` // elevenlabs, volcano
	APIKey          string  `mapstructure:"api_key"`
	BaseURL         string  `mapstructure:"base_url"`
	VoiceID         string  `mapstructure:"voice_id"` // 默认音色
	ModelID         string  `mapstructure:"model_id"`
	OutputFormat    string  `mapstructure:"output_format"`
	Stability       float64 `mapstructure:"stability"`
	SimilarityBoost float64 `mapstructure:"similarity_boost"`
	AppID           string  `mapstructure:"app_id"`  // volcano only
	Cluster         string  `mapstructure:"cluster"` // volcano only
}

// ProxyConfig 出站代理配置，启动时读取一次
type ProxyConfig struct {
	URL string `mapstructure:"url"` // socks5://, socks5h://, http://, https://
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// DebugConfig 诊断接口配置
type DebugConfig struct {
	Enabled bool `mapstructure:"enabled"` // 是否开放 /api/debug-env
}

var (
	validLLMProviders = map[string]bool{"openrouter": true, "openai": true, "azure": true, "ark": true}
	validTTSProviders = map[string]bool{"elevenlabs": true, "volcano": true}
	validProxySchemes = map[string]bool{"socks5": true, "socks5h": true, "http": true, "https": true}
)

// Validate 验证配置有效性
// 凭证缺失不在此处校验，由接口在调用时返回配置错误
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if !validLLMProviders[c.LLM.Provider] {
		return fmt.Errorf("unsupported llm provider: %s", c.LLM.Provider)
	}
	if !validTTSProviders[c.TTS.Provider] {
		return fmt.Errorf("unsupported tts provider: %s", c.TTS.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm timeout must be positive")
	}

	if c.Proxy.URL != "" {
		u, err := url.Parse(c.Proxy.URL)
		if err != nil {
			return fmt.Errorf("invalid proxy url: %w", err)
		}
		if !validProxySchemes[u.Scheme] {
			return fmt.Errorf("unsupported proxy scheme: %q", u.Scheme)
		}
	}

	return nil
}
