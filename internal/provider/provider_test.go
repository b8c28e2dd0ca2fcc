package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	"voxa/internal/ai"
	voxamodel "voxa/internal/model"
	"voxa/internal/pkg/elevenlabs"
	"voxa/internal/pkg/openrouter"
	"voxa/internal/pkg/tts"
	"voxa/internal/service"
)

var hello = []voxamodel.ChatMessage{{Role: voxamodel.RoleUser, Content: "Hello"}}

func stubServer(status int, contentType, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenRouterCompleter(t *testing.T) {
	Convey("OpenRouterCompleter 转换网关错误", t, func() {
		ctx := context.Background()

		Convey("成功", func() {
			srv := stubServer(http.StatusOK, "application/json", `{"choices":[{"message":{"content":"hi"}}]}`)
			defer srv.Close()

			p := NewOpenRouterCompleter(openrouter.NewClient(openrouter.Config{BaseURL: srv.URL, APIKey: "k"}, nil))
			content, err := p.Complete(ctx, hello)
			So(err, ShouldBeNil)
			So(content, ShouldEqual, "hi")
		})

		Convey("上游错误转换为 ChatUpstreamError", func() {
			srv := stubServer(http.StatusUnauthorized, "application/json", `{"error":"no auth"}`)
			defer srv.Close()

			p := NewOpenRouterCompleter(openrouter.NewClient(openrouter.Config{BaseURL: srv.URL, APIKey: "k"}, nil))
			_, err := p.Complete(ctx, hello)
			var upstreamErr *service.ChatUpstreamError
			So(errors.As(err, &upstreamErr), ShouldBeTrue)
			So(upstreamErr.StatusCode, ShouldEqual, http.StatusUnauthorized)
			So(upstreamErr.Details, ShouldResemble, map[string]any{"error": "no auth"})
		})

		Convey("空内容转换为 service.ErrEmptyContent", func() {
			srv := stubServer(http.StatusOK, "application/json", `{"choices":[{"message":{"content":""}}]}`)
			defer srv.Close()

			p := NewOpenRouterCompleter(openrouter.NewClient(openrouter.Config{BaseURL: srv.URL, APIKey: "k"}, nil))
			_, err := p.Complete(ctx, hello)
			So(errors.Is(err, service.ErrEmptyContent), ShouldBeTrue)
		})
	})
}

type errChatModel struct{ err error }

func (m errChatModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return nil, m.err
}

func (m errChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, m.err
}

func TestEinoCompleter(t *testing.T) {
	Convey("EinoCompleter 转换模型错误", t, func() {
		ctx := context.Background()

		Convey("模型错误映射为 502", func() {
			p := NewEinoCompleter(ai.NewClientWithModel(errChatModel{err: errors.New("401 unauthorized")}))
			_, err := p.Complete(ctx, hello)
			var upstreamErr *service.ChatUpstreamError
			So(errors.As(err, &upstreamErr), ShouldBeTrue)
			So(upstreamErr.StatusCode, ShouldEqual, http.StatusBadGateway)
			So(upstreamErr.Details, ShouldEqual, "401 unauthorized")
		})

		Convey("超时保持原样", func() {
			p := NewEinoCompleter(ai.NewClientWithModel(errChatModel{err: context.DeadlineExceeded}))
			_, err := p.Complete(ctx, hello)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}

func TestElevenLabsSynthesizer(t *testing.T) {
	Convey("ElevenLabsSynthesizer", t, func() {
		ctx := context.Background()
		params := &service.SpeechParams{Text: "hi", VoiceID: "v", ModelID: "m", OutputFormat: "mp3_44100_128"}

		Convey("成功时返回音频流", func() {
			srv := stubServer(http.StatusOK, "audio/mpeg", "mp3-bytes")
			defer srv.Close()

			body, err := NewElevenLabsSynthesizer(elevenlabs.NewClient(srv.URL, "k", nil)).Synthesize(ctx, params)
			So(err, ShouldBeNil)
			data, _ := io.ReadAll(body)
			body.Close()
			So(string(data), ShouldEqual, "mp3-bytes")
		})

		Convey("上游错误转换为 SpeechUpstreamError", func() {
			srv := stubServer(http.StatusUnprocessableEntity, "application/json", `{"detail":"bad voice"}`)
			defer srv.Close()

			_, err := NewElevenLabsSynthesizer(elevenlabs.NewClient(srv.URL, "k", nil)).Synthesize(ctx, params)
			var upstreamErr *service.SpeechUpstreamError
			So(errors.As(err, &upstreamErr), ShouldBeTrue)
			So(upstreamErr.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
			So(upstreamErr.Details, ShouldEqual, `{"detail":"bad voice"}`)
		})
	})
}

func TestVolcanoSynthesizer(t *testing.T) {
	Convey("VolcanoSynthesizer", t, func() {
		ctx := context.Background()
		params := &service.SpeechParams{Text: "hi", VoiceID: tts.DefaultVoiceType}

		Convey("成功时返回解码后的音频", func() {
			srv := stubServer(http.StatusOK, "application/json",
				`{"code":3000,"message":"Success","data":"`+base64.StdEncoding.EncodeToString([]byte("mp3"))+`"}`)
			defer srv.Close()

			client := tts.NewClient(tts.Config{APIURL: srv.URL, AccessToken: "tok"}, nil)
			body, err := NewVolcanoSynthesizer(client).Synthesize(ctx, params)
			So(err, ShouldBeNil)
			data, _ := io.ReadAll(body)
			So(string(data), ShouldEqual, "mp3")
		})

		Convey("业务错误转换为 SpeechUpstreamError", func() {
			srv := stubServer(http.StatusOK, "application/json", `{"code":3050,"message":"voice not found"}`)
			defer srv.Close()

			client := tts.NewClient(tts.Config{APIURL: srv.URL, AccessToken: "tok"}, nil)
			_, err := NewVolcanoSynthesizer(client).Synthesize(ctx, params)
			var upstreamErr *service.SpeechUpstreamError
			So(errors.As(err, &upstreamErr), ShouldBeTrue)
			So(upstreamErr.Details, ShouldEqual, "3050: voice not found")
		})
	})
}
