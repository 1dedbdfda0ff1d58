package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var voiceHistory int

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Inspect or reset the monthly voice budget",
}

var voiceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show this month's voice usage",
	Args:  cobra.NoArgs,
	RunE:  runVoiceStatus,
}

var voiceResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset this month's voice usage to zero",
	Args:  cobra.NoArgs,
	RunE:  runVoiceReset,
}

func init() {
	voiceStatusCmd.Flags().IntVar(&voiceHistory, "history", 0, "also show this many past months (needs voice.usage_db)")
	voiceCmd.AddCommand(voiceStatusCmd)
	voiceCmd.AddCommand(voiceResetCmd)
	rootCmd.AddCommand(voiceCmd)
}

func runVoiceStatus(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context(), withDocuments)
	if err != nil {
		return err
	}
	defer a.Close()

	usage, err := a.voice.Usage(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading voice usage: %w", err)
	}

	available := "not configured"
	if a.voice.Available() {
		available = "configured"
	}
	cmd.Printf("Voice API:  %s\n", available)
	cmd.Printf("Used:       %d / %d characters (%.1f%%)\n", usage.Used, usage.Limit, usage.PercentUsed())
	cmd.Printf("Remaining:  %d characters\n", usage.Remaining())

	if voiceHistory <= 0 {
		return nil
	}
	if a.history == nil {
		cmd.Println()
		cmd.Println("No usage history: voice usage is kept in memory (set voice.usage_db).")
		return nil
	}
	months, err := a.history(cmd.Context(), voiceHistory)
	if err != nil {
		return fmt.Errorf("reading usage history: %w", err)
	}
	cmd.Println()
	cmd.Println("History:")
	for _, m := range months {
		cmd.Printf("  %s  %d\n", m.Month, m.Characters)
	}
	return nil
}

func runVoiceReset(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context(), withDocuments)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.history == nil {
		cmd.Println("Voice usage is kept in memory; nothing to reset (set voice.usage_db).")
		return nil
	}
	if err := a.voice.ResetUsage(cmd.Context()); err != nil {
		return fmt.Errorf("resetting voice usage: %w", err)
	}
	cmd.Println("Voice usage for this month reset to 0.")
	return nil
}
