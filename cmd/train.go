package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/benbotluks/staffear/internal/audio"
	"github.com/benbotluks/staffear/internal/settings"
	"github.com/benbotluks/staffear/internal/stats"
	"github.com/benbotluks/staffear/internal/tui"
)

var (
	silent       bool
	settingsPath string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run the interactive ear trainer",
	Long: `Run the interactive trainer. Each round plays a chord; place the notes
you heard on the staff and submit with enter.

Example:
  staffear train
  staffear train --silent
`,
	Run: runTrain,
}

func init() {
	trainCmd.Flags().BoolVar(&silent, "silent", false, "Run without audio (visual mode)")
	trainCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to the settings file")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) {
	var warnings []string

	path := settingsPath
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			warnings = append(warnings, fmt.Sprintf("no config dir: %v", err))
		}
	}
	var store *settings.Store
	cfg := settings.Default()
	if path != "" {
		store = settings.NewStore(path)
		var err error
		if cfg, err = store.Load(); err != nil {
			warnings = append(warnings, fmt.Sprintf("settings reset: %v", err))
		}
	}

	var statsStore *stats.Store
	if dbPath, err := stats.DefaultPath(); err == nil {
		if statsStore, err = stats.Open(dbPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("statistics disabled: %v", err))
		}
	}

	var engine *audio.Engine
	if !silent {
		var err error
		if engine, err = audio.NewEngine(); err != nil {
			warnings = append(warnings, fmt.Sprintf("audio disabled: %v", err))
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m := tui.NewModel(cfg, store, statsStore, engine, rng, warnings)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		p.Send(tea.Quit())
	}()

	_, err := p.Run()
	if engine != nil {
		engine.Close()
	}
	if statsStore != nil {
		statsStore.Close()
	}
	if err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
