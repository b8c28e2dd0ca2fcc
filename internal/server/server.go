package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "voxa/docs"
	"voxa/internal/ai"
	"voxa/internal/config"
	"voxa/internal/handler"
	"voxa/internal/pkg/elevenlabs"
	"voxa/internal/pkg/netproxy"
	"voxa/internal/pkg/openrouter"
	"voxa/internal/pkg/tts"
	"voxa/internal/provider"
	"voxa/internal/server/middleware"
	"voxa/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	completer service.Completer
	synth     service.Synthesizer
}

// New 创建服务器实例
// 出站 HTTP 客户端只构建一次，两个网关共用同一个代理配置
func New(cfg *config.Config) (*Server, error) {
	httpClient, err := netproxy.NewClient(cfg.Proxy.URL)
	if err != nil {
		return nil, fmt.Errorf("build outbound client: %w", err)
	}
	if cfg.Proxy.URL != "" {
		log.Info().Str("proxy", netproxy.Redact(cfg.Proxy.URL)).Msg("outbound requests go through proxy")
	}

	completer, err := newCompleter(&cfg.LLM, httpClient)
	if err != nil {
		return nil, err
	}
	synth := newSynthesizer(&cfg.TTS, httpClient)

	return NewWithGateways(cfg, completer, synth), nil
}

// NewWithGateways 使用给定的网关创建服务器 (用于测试)
func NewWithGateways(cfg *config.Config, completer service.Completer, synth service.Synthesizer) *Server {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:       cfg,
		engine:    gin.New(),
		completer: completer,
		synth:     synth,
	}

	srv.setupRoutes()

	return srv
}

// newCompleter 按 provider 选择对话网关
// 凭证未配置时返回 nil，由 ChatService 在请求时报错
func newCompleter(cfg *config.LLMConfig, httpClient *http.Client) (service.Completer, error) {
	if cfg.APIKey == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("LLM API key not set, /api/chat will fail")
		return nil, nil
	}

	switch cfg.Provider {
	case "", "openrouter":
		client := openrouter.NewClient(openrouter.Config{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Referer:     cfg.Referer,
			Title:       cfg.Title,
			Temperature: cfg.Options.Temperature,
			MaxTokens:   cfg.Options.MaxTokens,
		}, httpClient)
		return provider.NewOpenRouterCompleter(client), nil
	default:
		client, err := ai.NewClient(context.Background(), cfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("init %s chat model: %w", cfg.Provider, err)
		}
		log.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("initialized chat model")
		return provider.NewEinoCompleter(client), nil
	}
}

// newSynthesizer 按 provider 选择语音网关
func newSynthesizer(cfg *config.TTSConfig, httpClient *http.Client) service.Synthesizer {
	if cfg.APIKey == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("TTS API key not set, /api/tts will fail")
		return nil
	}

	switch cfg.Provider {
	case "volcano":
		if cfg.VoiceID == "" {
			cfg.VoiceID = tts.DefaultVoiceType
		}
		client := tts.NewClient(tts.Config{
			APIURL:      cfg.BaseURL,
			AccessToken: cfg.APIKey,
			AppID:       cfg.AppID,
			Cluster:     cfg.Cluster,
		}, httpClient)
		return provider.NewVolcanoSynthesizer(client)
	default:
		return provider.NewElevenLabsSynthesizer(elevenlabs.NewClient(cfg.BaseURL, cfg.APIKey, httpClient))
	}
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.cfg)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	chatHandler := handler.NewChatHandler(service.NewChatService(&s.cfg.LLM, s.completer))
	speechHandler := handler.NewSpeechHandler(service.NewSpeechService(&s.cfg.TTS, s.synth))

	api := s.engine.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.POST("/tts", speechHandler.Speech)

		// 诊断接口只在显式开启时注册
		if s.cfg.Debug.Enabled {
			api.GET("/debug-env", handler.NewDebugHandler(s.cfg).DebugEnv)
			log.Warn().Msg("debug endpoint /api/debug-env enabled")
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
