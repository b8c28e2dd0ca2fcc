package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"voxa/internal/assistant"
	"voxa/internal/model"
	"voxa/internal/pkg/ffmpeg"
	"voxa/internal/pkg/logger"
)

var (
	talkServer string
	talkSystem string
	talkMute   bool
)

var talkCmd = &cobra.Command{
	Use:   "talk",
	Short: "Start an interactive conversation with the relay",
	Long: `Read lines from stdin, send them to the chat relay and play the spoken reply.

Commands:
  /mic      toggle the microphone indicator
  /stop     stop the current playback
  /history  print the last 10 messages
  /quit     exit`,
	RunE: runTalk,
}

func init() {
	rootCmd.AddCommand(talkCmd)

	flags := talkCmd.Flags()
	flags.StringVar(&talkServer, "server", "", "relay base URL (default: http://localhost:<server.port>)")
	flags.StringVar(&talkSystem, "system", assistant.DefaultSystem, "system preamble sent with every chat request")
	flags.BoolVar(&talkMute, "mute", false, "do not play synthesized audio")
}

var (
	userLabel      = color.New(color.FgCyan, color.Bold).SprintFunc()
	assistantLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	statusLabel    = color.New(color.FgYellow).SprintFunc()
	errorLabel     = color.New(color.FgRed).SprintFunc()
)

func runTalk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// 日志输出到 stderr，避免与对话内容混在一起
	if cfg.Log.Output == "" || cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
		if err := logger.Init(&cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}

	server := talkServer
	if server == "" {
		server = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	var backend assistant.Backend = assistant.NopBackend{}
	if !talkMute {
		client := ffmpeg.NewClient()
		if client.Available() {
			backend = &announcingBackend{prober: client, player: client, out: cmd.OutOrStdout()}
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), statusLabel("ffplay not found, audio is muted (set FFPLAY_PATH)"))
		}
	}

	player := assistant.NewPlayer(backend, "")
	defer player.Stop()

	relay := assistant.NewRelay(server, http.DefaultClient)
	conv := assistant.NewConversation(relay, relay, player, talkSystem)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Debug().Str("server", server).Bool("mute", talkMute).Msg("conversation started")
	fmt.Fprintln(cmd.OutOrStdout(), statusLabel("Voice Assistant. Type a message, or /quit to exit."))

	return talkLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), conv)
}

// talkLoop 逐行读取输入并执行命令或发送消息
func talkLoop(ctx context.Context, in io.Reader, out io.Writer, conv *assistant.Conversation) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/mic":
			if conv.ToggleRecognizing() {
				fmt.Fprintln(out, statusLabel("listening..."))
			} else {
				fmt.Fprintln(out, statusLabel("waiting"))
			}
			continue
		case "/stop":
			conv.Stop()
			continue
		case "/history":
			printMessages(out, conv.Visible())
			continue
		}

		answer, err := conv.Send(ctx, line)
		switch {
		case errors.Is(err, assistant.ErrBusy):
			fmt.Fprintln(out, errorLabel("busy, wait for the current answer"))
		case errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			fmt.Fprintln(out, errorLabel(err.Error()))
			printMessages(out, []model.ChatMessage{{Role: model.RoleAssistant, Content: assistant.ErrorPlaceholder}})
		default:
			printMessages(out, []model.ChatMessage{{Role: model.RoleAssistant, Content: answer}})
		}
	}
}

func printMessages(out io.Writer, messages []model.ChatMessage) {
	if len(messages) == 0 {
		fmt.Fprintln(out, statusLabel("no messages yet"))
		return
	}
	for _, m := range messages {
		label := assistantLabel(strings.ToUpper(string(m.Role)))
		if m.Role == model.RoleUser {
			label = userLabel(strings.ToUpper(string(m.Role)))
		}
		fmt.Fprintf(out, "%s\n%s\n", label, m.Content)
	}
}

// audioProber 读取音频时长
type audioProber interface {
	GetAudioInfo(ctx context.Context, audioPath string) (*ffmpeg.AudioInfo, error)
}

// announcingBackend 播放前打印回复的音频时长
// 探测失败不影响播放
type announcingBackend struct {
	prober audioProber
	player assistant.Backend
	out    io.Writer
}

// Play 实现 assistant.Backend
func (b *announcingBackend) Play(ctx context.Context, path string) error {
	info, err := b.prober.GetAudioInfo(ctx, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("probe audio duration failed")
	} else {
		fmt.Fprintln(b.out, statusLabel(fmt.Sprintf("speaking (%.1fs)", info.Duration)))
	}
	return b.player.Play(ctx, path)
}
