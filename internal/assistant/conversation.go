package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"voxa/internal/model"
)

// DefaultSystem 默认系统提示词
const DefaultSystem = "You are a concise helpful voice assistant. If user speaks Russian, reply in Russian; if English, reply in English."

// ErrorPlaceholder 对话失败时写入记录的助手消息
const ErrorPlaceholder = "error: no answer"

// VisibleLimit 展示视图保留的消息条数
const VisibleLimit = 10

var (
	ErrEmptyInput = errors.New("empty input")
	ErrBusy       = errors.New("a turn is already in flight")
)

// ChatRelay 对话中继
type ChatRelay interface {
	Chat(ctx context.Context, system string, messages []model.ChatMessage) (string, error)
}

// SpeechRelay 语音中继
type SpeechRelay interface {
	Speak(ctx context.Context, text string) (io.ReadCloser, error)
}

// AudioPlayer 播放合成结果
type AudioPlayer interface {
	Play(audio io.Reader) error
	Stop()
}

// Flags 客户端状态快照
type Flags struct {
	Recognizing bool // 麦克风已开启，仅界面状态
	Loading     bool // 对话请求进行中
	Speaking    bool // 语音请求或播放启动进行中
}

// Conversation 对话客户端
// 维护只追加的对话记录与三个状态位，同一时间只允许一轮对话
type Conversation struct {
	chat   ChatRelay
	speech SpeechRelay
	player AudioPlayer
	system string

	mu         sync.Mutex
	transcript []model.ChatMessage
	flags      Flags
}

// NewConversation 创建对话客户端
func NewConversation(chat ChatRelay, speech SpeechRelay, player AudioPlayer, system string) *Conversation {
	if system == "" {
		system = DefaultSystem
	}
	return &Conversation{
		chat:   chat,
		speech: speech,
		player: player,
		system: system,
	}
}

// Flags 返回状态快照
func (c *Conversation) Flags() Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

// Transcript 返回完整对话记录的副本
func (c *Conversation) Transcript() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.ChatMessage(nil), c.transcript...)
}

// Visible 返回最近 VisibleLimit 条消息
func (c *Conversation) Visible() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := 0
	if len(c.transcript) > VisibleLimit {
		start = len(c.transcript) - VisibleLimit
	}
	return append([]model.ChatMessage(nil), c.transcript[start:]...)
}

// ToggleRecognizing 切换麦克风状态，返回切换后的值
func (c *Conversation) ToggleRecognizing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flags.Recognizing = !c.flags.Recognizing
	return c.flags.Recognizing
}

// Stop 停止当前播放
func (c *Conversation) Stop() {
	if c.player != nil {
		c.player.Stop()
	}
}

// Send 执行一轮对话
// 流程: 1. 记录用户消息 -> 2. 携带完整记录调用对话中继 -> 3. 记录回复并合成播放
// 对话失败时写入 ErrorPlaceholder 并跳过合成；合成或播放失败只清除 speaking
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	c.mu.Lock()
	if c.flags.Loading || c.flags.Speaking {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.transcript = append(c.transcript, model.ChatMessage{Role: model.RoleUser, Content: text})
	history := append([]model.ChatMessage(nil), c.transcript...)
	c.flags.Loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.flags.Loading = false
		c.mu.Unlock()
	}()

	answer, err := c.chat.Chat(ctx, c.system, history)
	if err != nil {
		c.appendAssistant(ErrorPlaceholder)
		log.Warn().Err(err).Msg("chat relay failed")
		return "", fmt.Errorf("chat relay: %w", err)
	}

	c.appendAssistant(answer)
	c.speak(ctx, answer)

	return answer, nil
}

func (c *Conversation) appendAssistant(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, model.ChatMessage{Role: model.RoleAssistant, Content: content})
}

// speak 合成并开始播放，失败只记录日志
func (c *Conversation) speak(ctx context.Context, text string) {
	c.mu.Lock()
	c.flags.Speaking = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.flags.Speaking = false
		c.mu.Unlock()
	}()

	audio, err := c.speech.Speak(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("speech relay failed")
		return
	}
	defer audio.Close()

	if c.player == nil {
		return
	}
	if err := c.player.Play(audio); err != nil {
		log.Warn().Err(err).Msg("playback failed")
	}
}
