package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Client FFmpeg 客户端
// 用于封装 ffplay / ffprobe 命令调用
type Client struct {
	ffplayPath  string // ffplay 可执行文件路径（默认: ffplay）
	ffprobePath string // ffprobe 可执行文件路径（默认: ffprobe）
}

// NewClient 创建 FFmpeg 客户端
func NewClient() *Client {
	ffplayPath := os.Getenv("FFPLAY_PATH")
	if ffplayPath == "" {
		ffplayPath = "ffplay"
	}

	ffprobePath := os.Getenv("FFPROBE_PATH")
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	return &Client{
		ffplayPath:  ffplayPath,
		ffprobePath: ffprobePath,
	}
}

// Available 检查 ffplay 是否在 PATH 中
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.ffplayPath)
	return err == nil
}

// Play 播放音频文件，阻塞到播放结束
// ctx 取消时终止 ffplay 进程并返回 ctx.Err()
func (c *Client) Play(ctx context.Context, audioPath string) error {
	// ffplay -nodisp -autoexit -loglevel error speech.mp3
	cmd := exec.CommandContext(ctx, c.ffplayPath,
		"-nodisp",
		"-autoexit",
		"-loglevel", "error",
		audioPath,
	)

	output, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		log.Error().Err(err).Str("output", string(output)).Str("path", audioPath).Msg("ffplay failed")
		return fmt.Errorf("ffplay failed: %w", err)
	}

	return nil
}

// AudioInfo 音频信息
type AudioInfo struct {
	Duration float64 // 时长（秒）
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetAudioInfo 获取音频信息
func (c *Client) GetAudioInfo(ctx context.Context, audioPath string) (*AudioInfo, error) {
	// ffprobe -v error -show_entries format=duration -of json speech.mp3
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		audioPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeOutput(output)
}

func parseProbeOutput(output []byte) (*AudioInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return nil, errors.New("ffprobe output has no duration")
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}

	return &AudioInfo{Duration: duration}, nil
}
