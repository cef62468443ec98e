package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benbotluks/staffear/internal/game"
	"github.com/benbotluks/staffear/internal/stats"
)

var historyLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print training statistics",
	Long: `Print totals, per-difficulty accuracy and the most recent rounds from
the local statistics database.

Example:
  staffear stats
  staffear stats --recent 25
`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&historyLimit, "recent", 10, "Number of recent rounds to list")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	path, err := stats.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := stats.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	summary, err := store.Summary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if summary.TotalAttempts == 0 {
		fmt.Println("No rounds recorded yet. Run `staffear train` first.")
		return
	}

	fmt.Printf("Attempts: %d\n", summary.TotalAttempts)
	fmt.Printf("Correct:  %d (%.1f%%)\n", summary.CorrectAnswers,
		100*float64(summary.CorrectAnswers)/float64(summary.TotalAttempts))

	if len(summary.AccuracyByDifficulty) > 0 {
		fmt.Println("\nAccuracy by difficulty:")
		for d := 1; d <= 8; d++ {
			if acc, ok := summary.AccuracyByDifficulty[d]; ok {
				fmt.Printf("  %d note(s) [%s]: %5.1f%%\n", d, game.DifficultyName(d), acc)
			}
		}
	}

	history, err := store.History(historyLimit)
	if err != nil || len(history) == 0 {
		return
	}
	fmt.Println("\nRecent rounds:")
	for _, sess := range history {
		mark := "✗"
		if sess.Correct {
			mark = "✓"
		}
		fmt.Printf("  %s %s  played %s, answered %s\n",
			mark,
			sess.When.Format("2006-01-02 15:04"),
			strings.Join(sess.NotesPlayed, " "),
			strings.Join(sess.UserAnswer, " "))
	}
}
