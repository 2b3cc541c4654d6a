package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"prview/internal/app"
	"prview/internal/config"
	gitint "prview/internal/git"
	"prview/internal/logutils"
)

var (
	baseRef    string
	configPath string
	logFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prview",
	Short: "Review git changes with a commit list, file tree and diff pane",
	RunE:  runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&baseRef, "base", "b", "", "Ref the worktree is diffed against (default from config)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if baseRef != "" {
		cfg.BaseRef = baseRef
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	log, closeLog, err := logutils.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	client, err := gitint.Discover(cmd.Context(), cwd)
	if err != nil {
		return fmt.Errorf("not inside a git repository: %w", err)
	}
	log.Info().Str("root", client.Root()).Str("base", cfg.BaseRef).Msg("starting")

	model, err := app.NewModel(cfg, log, client)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}
