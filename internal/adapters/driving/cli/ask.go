package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

var (
	askMode     string
	askVoice    bool
	askAudioOut string
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Long: `Answers one question through the same chat path as POST /api/chat.

Modes:
  text            resident documents, on-screen answer (default)
  research        resident documents plus the search tools
  voice           resident documents, short spoken answer
  voice-research  voice with the search tools

Voice modes spend the monthly voice budget; use --audio-out to keep the MP3.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "chat mode (default from config)")
	askCmd.Flags().BoolVar(&askVoice, "voice", false, "shorthand for --mode voice")
	askCmd.Flags().StringVarP(&askAudioOut, "audio-out", "o", "", "write the spoken answer to this MP3 file")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the JSON form of a reply.
type askOutput struct {
	Text       string  `json:"text"`
	Mode       string  `json:"mode"`
	Escalated  bool    `json:"escalated"`
	Cached     bool    `json:"cached"`
	Rounds     int     `json:"rounds"`
	ToolCalls  int     `json:"toolCalls"`
	CappedOut  bool    `json:"cappedOut"`
	Voice      string  `json:"voice,omitempty"`
	AudioFile  string  `json:"audioFile,omitempty"`
	DurationMS float64 `json:"durationMs"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	mode := domain.ChatMode(askMode)
	if mode == "" && askVoice {
		mode = domain.ModeVoice
	}
	if mode != "" && !mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}

	a, err := setup(cmd.Context(), withChat)
	if err != nil {
		return err
	}
	defer a.Close()

	reply, err := a.chat.Chat(cmd.Context(), domain.ChatRequest{Message: question, Mode: mode})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	out := askOutput{
		Text:       reply.Text,
		Mode:       string(reply.Mode),
		Escalated:  reply.Escalated,
		Cached:     reply.Cached,
		Rounds:     reply.Rounds,
		ToolCalls:  reply.ToolCalls,
		CappedOut:  reply.CappedOut,
		DurationMS: float64(reply.Duration) / float64(time.Millisecond),
	}
	if sp := reply.Speech; sp != nil {
		out.Voice = string(sp.Status)
		if askAudioOut != "" && len(sp.Audio) > 0 {
			if err := os.WriteFile(askAudioOut, sp.Audio, 0o600); err != nil {
				return fmt.Errorf("writing audio: %w", err)
			}
			out.AudioFile = askAudioOut
		}
	}

	if askJSON {
		return outputJSON(cmd, out)
	}

	cmd.Println(out.Text)
	cmd.Println()
	cmd.Printf("[%s", out.Mode)
	if out.Escalated {
		cmd.Print(", escalated")
	}
	if out.Cached {
		cmd.Print(", cached")
	}
	if out.Rounds > 0 {
		cmd.Printf(", %d tool rounds", out.Rounds)
	}
	if out.Voice != "" {
		cmd.Printf(", voice %s", out.Voice)
	}
	if out.AudioFile != "" {
		cmd.Printf(" -> %s", out.AudioFile)
	}
	cmd.Printf(", %s]\n", reply.Duration.Round(time.Millisecond))
	return nil
}
