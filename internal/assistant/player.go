package assistant

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// PlaybackState 播放状态
type PlaybackState string

const (
	StateIdle    PlaybackState = "idle"
	StatePlaying PlaybackState = "playing"
)

// Backend 音频输出，阻塞到播放结束或 ctx 取消
type Backend interface {
	Play(ctx context.Context, path string) error
}

// NopBackend 静音输出，直接返回
type NopBackend struct{}

// Play 实现 Backend
func (NopBackend) Play(ctx context.Context, path string) error {
	return ctx.Err()
}

// Player 单实例播放器
// 同一时间最多一段音频在播放，新的播放会先停止并等待旧的结束
type Player struct {
	backend Backend
	tempDir string

	// opMu 串行化 Play 与 Stop
	opMu sync.Mutex

	mu     sync.Mutex
	state  PlaybackState
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer 创建播放器，tempDir 为空时使用系统临时目录
func NewPlayer(backend Backend, tempDir string) *Player {
	if backend == nil {
		backend = NopBackend{}
	}
	return &Player{
		backend: backend,
		tempDir: tempDir,
		state:   StateIdle,
	}
}

// State 当前播放状态
func (p *Player) State() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Play 把音频写入临时文件并开始播放，播放开始后立即返回
// 临时文件在播放结束（正常结束或被停止）时删除
func (p *Player) Play(audio io.Reader) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.stop()

	path, err := p.writeTemp(audio)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.state = StatePlaying
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		if err := p.backend.Play(ctx, path); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("playback failed")
		}
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to remove audio file")
		}

		p.mu.Lock()
		if p.done == done {
			p.state = StateIdle
			p.cancel = nil
			p.done = nil
		}
		p.mu.Unlock()
	}()

	return nil
}

// Stop 停止当前播放并等待其结束，下一次播放从头开始
func (p *Player) Stop() {
	p.opMu.Lock()
	defer p.opMu.Unlock()
	p.stop()
}

// Wait 等待当前播放结束
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

// stop 调用方持有 p.opMu
func (p *Player) stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.done = nil
	p.state = StateIdle
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Player) writeTemp(audio io.Reader) (string, error) {
	f, err := os.CreateTemp(p.tempDir, "voxa-speech-*.mp3")
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}

	if _, err := io.Copy(f, audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close audio file: %w", err)
	}

	return f.Name(), nil
}
