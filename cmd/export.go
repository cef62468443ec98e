package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benbotluks/staffear/internal/game"
	"github.com/benbotluks/staffear/internal/midifile"
	"github.com/benbotluks/staffear/internal/music"
)

var (
	exportOut   string
	exportNotes int
	exportBPM   int
	exportPitch []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an exercise as a Standard MIDI File",
	Long: `Export an exercise chord as a Standard MIDI File, either a random one
or the notes given on the command line.

Example:
  staffear export --out exercise.mid --notes 3
  staffear export --out chord.mid --pitch C4 --pitch E4 --pitch G4
`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "exercise.mid", "Output file path")
	exportCmd.Flags().IntVarP(&exportNotes, "notes", "n", 3, "Number of notes in a random exercise")
	exportCmd.Flags().IntVar(&exportBPM, "bpm", 120, "Tempo of the exported file")
	exportCmd.Flags().StringArrayVarP(&exportPitch, "pitch", "p", nil, "Explicit note (e.g. C4, F#5); repeatable, overrides --notes")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	var answer []music.Note
	if len(exportPitch) > 0 {
		for _, s := range exportPitch {
			n, err := music.ParseNote(s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: bad note %q: %v\n", s, err)
				os.Exit(1)
			}
			answer = append(answer, n)
		}
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		round := game.NewRound(rng, exportNotes, exportNotes)
		answer = round.Answer
	}

	if err := midifile.Export(exportOut, answer, nil, exportBPM); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, len(answer))
	for i, n := range answer {
		names[i] = n.String()
	}
	fmt.Printf("Wrote %s (%s at %d BPM)\n", exportOut, strings.Join(names, " "), exportBPM)
}
