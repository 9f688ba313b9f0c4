// Package main provides the CLI entrypoint for fingertypos.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fingertypos/internal/config"
	"github.com/verte-zerg/fingertypos/internal/generator"
	"github.com/verte-zerg/fingertypos/internal/levels"
	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/profile"
	"github.com/verte-zerg/fingertypos/internal/progression"
	"github.com/verte-zerg/fingertypos/internal/store"
	"github.com/verte-zerg/fingertypos/internal/tui"
	"github.com/verte-zerg/fingertypos/internal/wordlist"
)

const (
	defaultLevel       = "c-1-1"
	defaultLength      = string(model.LengthMedium)
	defaultCurveWindow = 5
)

var (
	practiceLevel    string
	practiceLength   string
	practiceProfile  string
	practiceGhostFPS int
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		logErrf("failed to load .env: %v\n", err)
	}
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fingertypos",
		Short:         "Touch-typing trainer with campaign levels and ghost replays",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addPracticeFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Practice a level",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addPracticeFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceLevel, "level", defaultLevel, "level id (see: fingertypos levels)")
	cmd.Flags().StringVar(&practiceLength, "length", defaultLength, "lesson length: short, medium or long")
	cmd.Flags().StringVar(&practiceProfile, "profile", "", "profile id (default: active profile)")
	cmd.Flags().IntVar(&practiceGhostFPS, "ghost-fps", tui.DefaultGhostFPS, "ghost cursor refresh rate")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	configPath := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := practiceConfig(cmd, fileCfg, filepath.Dir(configPath))
	if err != nil {
		return err
	}

	ctx := context.Background()
	return withProfiles(func(svc *profile.Service) error {
		p, err := svc.Resolve(ctx, cfg.ProfileID)
		if err != nil {
			return profileError(err)
		}
		level, mode, err := selectLevel(p, cfg.LevelID)
		if err != nil {
			return err
		}
		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}

		m := tui.NewModel(ctx, tui.Options{
			Level:     level,
			Mode:      mode,
			Length:    cfg.Length,
			Profile:   p,
			Recorder:  svc,
			Generator: gen,
			GhostFPS:  cfg.GhostFPS,
		})
		program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
}

// practiceConfig merges flags over the config file. Flags set on the
// command line always win.
func practiceConfig(cmd *cobra.Command, fileCfg config.FileConfig, configDir string) (model.Config, error) {
	applyStringConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyStringConfig(cmd, "length", &practiceLength, fileCfg.Practice.Length)
	applyStringConfig(cmd, "profile", &practiceProfile, fileCfg.Practice.Profile)
	applyIntConfig(cmd, "ghost-fps", &practiceGhostFPS, fileCfg.Practice.GhostFPS)

	length, ok := model.ParseLengthVariant(strings.TrimSpace(practiceLength))
	if !ok {
		return model.Config{}, fmt.Errorf("--length must be short, medium or long")
	}
	cfg := model.Config{
		LevelID:   strings.TrimSpace(practiceLevel),
		Length:    length,
		ProfileID: strings.TrimSpace(practiceProfile),
		GhostFPS:  practiceGhostFPS,
	}
	if fileCfg.Generator.WordsFile != nil {
		cfg.WordsFile = config.ResolvePath(*fileCfg.Generator.WordsFile, configDir)
	}
	if fileCfg.Generator.Seed != nil {
		cfg.Seed = *fileCfg.Generator.Seed
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.LevelID == "" {
		return fmt.Errorf("--level must not be empty")
	}
	if cfg.GhostFPS <= 0 || cfg.GhostFPS > 120 {
		return fmt.Errorf("--ghost-fps must be between 1 and 120")
	}
	return nil
}

// selectLevel looks the level up in the profile's keyboard layout and checks
// that campaign levels are unlocked.
func selectLevel(p model.Profile, id string) (model.LevelConfig, model.SessionMode, error) {
	level, mode, ok := levels.Find(p.Settings.KeyboardLayout, id)
	if !ok {
		return model.LevelConfig{}, "", fmt.Errorf("unknown level %q (see: fingertypos levels)", id)
	}
	if mode == model.SessionCampaign && !progression.Unlocked(level, p.Level) {
		return model.LevelConfig{}, "", fmt.Errorf("level %q is locked: requires level %d, you are level %d", id, level.RequiredLevel, p.Level)
	}
	return level, mode, nil
}

func newGenerator(cfg model.Config) (*generator.Generator, error) {
	var opts []generator.Option
	if cfg.WordsFile != "" {
		words, err := wordlist.LoadTypeable(cfg.WordsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load words file: %w", err)
		}
		opts = append(opts, generator.WithWords(words))
	}
	if cfg.Seed != 0 {
		return generator.NewWithSeed(cfg.Seed, opts...), nil
	}
	return generator.New(opts...), nil
}

// withProfiles opens the database for the duration of fn.
func withProfiles(fn func(svc *profile.Service) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(profile.New(st))
}

func profileError(err error) error {
	if errors.Is(err, profile.ErrNoActiveProfile) {
		logErrln("Create one with: fingertypos profile create <name>")
	}
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
