package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"voxa/internal/config"
	"voxa/internal/pkg/logger"
	"voxa/internal/pkg/netproxy"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "voxa",
	Short: "Voxa - voice assistant relay",
	Long: `Voxa relays chat requests to an LLM gateway and speech requests to a TTS gateway,
and ships a terminal conversation client that talks to the relay.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"dotenv file loaded before reading the environment")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env 不覆盖已存在的环境变量
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.voxa")
	}

	// 环境变量设置
	viper.SetEnvPrefix("VOXA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindLegacyEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

// bindLegacyEnv 兼容不带 VOXA_ 前缀的变量名，带前缀的优先
func bindLegacyEnv() {
	_ = viper.BindEnv("llm.api_key", "VOXA_LLM_API_KEY", "OPENROUTER_API_KEY")
	_ = viper.BindEnv("llm.model", "VOXA_LLM_MODEL", "OPENROUTER_MODEL")
	_ = viper.BindEnv("tts.api_key", "VOXA_TTS_API_KEY", "ELEVENLABS_API_KEY")
	_ = viper.BindEnv("tts.voice_id", "VOXA_TTS_VOICE_ID", "ELEVENLABS_VOICE_ID")
	_ = viper.BindEnv(append([]string{"proxy.url", "VOXA_PROXY_URL"}, netproxy.EnvKeys...)...)
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 7080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "0s") // 0 不限制，/api/tts 音频流不设超时

	// LLM
	viper.SetDefault("llm.provider", "openrouter")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.model", "openai/gpt-4o-mini")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.referer", "http://localhost:3000")
	viper.SetDefault("llm.title", "Voice Assistant (dev)")
	viper.SetDefault("llm.timeout", "30s")
	viper.SetDefault("llm.options.temperature", 0.6)
	viper.SetDefault("llm.options.max_tokens", 400)
	viper.SetDefault("llm.options.top_p", 1.0)

	// TTS
	viper.SetDefault("tts.provider", "elevenlabs")
	viper.SetDefault("tts.api_key", "")
	viper.SetDefault("tts.base_url", "")
	viper.SetDefault("tts.voice_id", "")
	viper.SetDefault("tts.model_id", "eleven_turbo_v2_5")
	viper.SetDefault("tts.output_format", "mp3_44100_128")
	viper.SetDefault("tts.stability", 0.5)
	viper.SetDefault("tts.similarity_boost", 0.5)
	viper.SetDefault("tts.app_id", "")
	viper.SetDefault("tts.cluster", "")

	// Proxy
	viper.SetDefault("proxy.url", "")

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// Debug
	viper.SetDefault("debug.enabled", false)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
