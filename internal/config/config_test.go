package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 7080, Mode: "release"},
		LLM:    LLMConfig{Provider: "openrouter", Timeout: 30 * time.Second},
		TTS:    TTSConfig{Provider: "elevenlabs"},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Config.Validate 校验配置", t, func() {
		Convey("默认配置通过", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("缺少凭证不影响启动", func() {
			cfg := validConfig()
			cfg.LLM.APIKey = ""
			cfg.TTS.APIKey = ""
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("非法端口", func() {
			cfg := validConfig()
			cfg.Server.Port = 70000
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("非法模式", func() {
			cfg := validConfig()
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("未知的 provider", func() {
			cfg := validConfig()
			cfg.LLM.Provider = "nope"
			So(cfg.Validate(), ShouldNotBeNil)

			cfg = validConfig()
			cfg.TTS.Provider = "nope"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("超时必须为正", func() {
			cfg := validConfig()
			cfg.LLM.Timeout = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("代理地址", func() {
			cfg := validConfig()
			cfg.Proxy.URL = "socks5://127.0.0.1:1080"
			So(cfg.Validate(), ShouldBeNil)

			cfg.Proxy.URL = "ftp://127.0.0.1:21"
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}
