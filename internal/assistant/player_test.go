package assistant

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend 阻塞到 ctx 取消或 finish 被关闭
type fakeBackend struct {
	mu       sync.Mutex
	paths    []string
	contents []string
	started  chan string
	finish   chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		started: make(chan string, 8),
		finish:  make(chan struct{}),
	}
}

func (b *fakeBackend) Play(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.paths = append(b.paths, path)
	b.contents = append(b.contents, string(data))
	b.mu.Unlock()

	b.started <- path
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.finish:
		return nil
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestPlayerLifecycle(t *testing.T) {
	backend := newFakeBackend()
	player := NewPlayer(backend, t.TempDir())
	assert.Equal(t, StateIdle, player.State())

	require.NoError(t, player.Play(strings.NewReader("first")))
	path := <-backend.started
	assert.Equal(t, StatePlaying, player.State())
	assert.True(t, fileExists(path))

	close(backend.finish)
	player.Wait()

	assert.Equal(t, StateIdle, player.State())
	assert.False(t, fileExists(path), "audio file should be removed when playback ends")
	assert.Equal(t, []string{"first"}, backend.contents)
}

func TestPlayerNewPlayStopsPrevious(t *testing.T) {
	backend := newFakeBackend()
	player := NewPlayer(backend, t.TempDir())

	require.NoError(t, player.Play(strings.NewReader("one")))
	first := <-backend.started

	require.NoError(t, player.Play(strings.NewReader("two")))
	second := <-backend.started

	// 第一段在第二段开始前已经结束并清理
	assert.False(t, fileExists(first))
	assert.True(t, fileExists(second))
	assert.Equal(t, StatePlaying, player.State())

	player.Stop()
	assert.Equal(t, StateIdle, player.State())
	assert.False(t, fileExists(second))
	assert.Equal(t, []string{"one", "two"}, backend.contents)
}

func TestPlayerStopIdle(t *testing.T) {
	player := NewPlayer(nil, t.TempDir())

	player.Stop()
	player.Wait()
	assert.Equal(t, StateIdle, player.State())

	// 静音输出立即结束
	require.NoError(t, player.Play(strings.NewReader("x")))
	player.Wait()
	assert.Eventually(t, func() bool { return player.State() == StateIdle }, time.Second, 10*time.Millisecond)
}
