package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"voxa/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay server",
	Long:  `Start the chat and speech relay server with the specified configuration.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()

	// Server flags
	flags.StringP("host", "H", "0.0.0.0", "server host")
	flags.IntP("port", "p", 7080, "server port")
	flags.String("mode", "release", "server mode (debug/release/test)")

	// LLM flags
	flags.String("llm-provider", "openrouter", "LLM provider (openrouter/openai/azure/ark)")
	flags.String("llm-model", "openai/gpt-4o-mini", "LLM model name")

	// TTS flags
	flags.String("tts-provider", "elevenlabs", "TTS provider (elevenlabs/volcano)")
	flags.String("voice-id", "", "default voice (recommend using env: ELEVENLABS_VOICE_ID)")

	// Proxy / debug flags
	flags.String("proxy", "", "outbound proxy URL (socks5://, socks5h://, http://, https://)")
	flags.Bool("debug-env", false, "expose GET /api/debug-env")

	// Log flags
	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/fatal)")
	flags.String("log-format", "console", "log format (json/console)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.host", flags.Lookup("host"))
	_ = viper.BindPFlag("server.port", flags.Lookup("port"))
	_ = viper.BindPFlag("server.mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("llm.provider", flags.Lookup("llm-provider"))
	_ = viper.BindPFlag("llm.model", flags.Lookup("llm-model"))
	_ = viper.BindPFlag("tts.provider", flags.Lookup("tts-provider"))
	_ = viper.BindPFlag("tts.voice_id", flags.Lookup("voice-id"))
	_ = viper.BindPFlag("proxy.url", flags.Lookup("proxy"))
	_ = viper.BindPFlag("debug.enabled", flags.Lookup("debug-env"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// Validate config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Create server
	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().
		Str("addr", addr).
		Str("mode", cfg.Server.Mode).
		Str("llm_provider", cfg.LLM.Provider).
		Str("tts_provider", cfg.TTS.Provider).
		Bool("llm_key_set", cfg.LLM.APIKey != "").
		Bool("tts_key_set", cfg.TTS.APIKey != "").
		Msg("starting server")

	return srv.Run(ctx, addr)
}
