// Package main provides the CLI entrypoint for mindgym.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mindgym/internal/config"
	"github.com/verte-zerg/mindgym/internal/games"
	"github.com/verte-zerg/mindgym/internal/i18n"
	"github.com/verte-zerg/mindgym/internal/locale"
	"github.com/verte-zerg/mindgym/internal/model"
	"github.com/verte-zerg/mindgym/internal/results"
	"github.com/verte-zerg/mindgym/internal/stats"
	"github.com/verte-zerg/mindgym/internal/store"
	"github.com/verte-zerg/mindgym/internal/tui"
)

const (
	defaultFallback    = "en"
	defaultCurveWindow = 5
)

var (
	dbPath       string
	fallbackLang string

	recordContext string
	bestContext   string

	historyContext     string
	historyLast        int
	historyCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mindgym",
		Short:         "Brain training scores and settings",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runHomeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to the score database")
	rootCmd.PersistentFlags().StringVar(&fallbackLang, "fallback-lang", defaultFallback, "language used when the system language is unsupported")

	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newBestCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newLangCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles what every command needs after config is applied.
type app struct {
	ctx      context.Context
	store    *store.Store
	results  *results.Store
	selector *locale.Selector
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Storage.DB)
	applyStringConfig(cmd, "fallback-lang", &fallbackLang, fileCfg.Locale.Fallback)

	cfg := model.Config{
		DBPath:         dbPath,
		FallbackLocale: fallbackLang,
	}
	fallback, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &app{
		ctx:      ctx,
		store:    st,
		results:  results.New(ctx, st),
		selector: locale.NewSelector(ctx, st, locale.PreferredFromEnv(), fallback),
	}, nil
}

func (a *app) close() {
	if cerr := a.store.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runHomeCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	home := tui.NewModel(a.results, a.selector)
	defer home.Close()
	program := tea.NewProgram(home, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List games with their best scores",
		Args:  cobra.NoArgs,
		RunE:  runGamesCmd,
	}
}

func runGamesCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	l := a.selector.Current()
	rows := stats.BuildBoard(a.results, l)
	if err := stats.RenderBoard(cmd.OutOrStdout(), stats.Labels(l), rows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <game> <score>",
		Short: "Record a finished attempt",
		Args:  cobra.ExactArgs(2),
		RunE:  runRecordCmd,
	}
	cmd.Flags().StringVar(&recordContext, "context", "", "sub-configuration such as grid size (e.g. 3x3)")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, args []string) error {
	variant, err := games.Parse(args[0])
	if err != nil {
		return err
	}
	score, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", args[1], err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return fmt.Errorf("invalid score %q: %w", args[1], results.ErrInvalidScore)
	}
	if score < 0 {
		return fmt.Errorf("score must be >= 0")
	}
	scope := strings.TrimSpace(recordContext)
	if err := games.ValidContext(variant, scope); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	info, _ := games.Lookup(variant)
	previous, hadPrevious := a.results.Best(variant, scope)
	rec, err := a.results.Record(a.ctx, variant, score, scope)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Recorded %s %s\n", rec.Variant, stats.FormatScore(rec.Score, info.Unit)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !hadPrevious || games.Better(variant, score, previous) {
		if _, err := fmt.Fprintln(out, "New best!"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newBestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "best <game>",
		Short: "Show the best score of a game",
		Args:  cobra.ExactArgs(1),
		RunE:  runBestCmd,
	}
	cmd.Flags().StringVar(&bestContext, "context", "", "only consider attempts with this context")
	return cmd
}

func runBestCmd(cmd *cobra.Command, args []string) error {
	variant, err := games.Parse(args[0])
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	info, _ := games.Lookup(variant)
	best, ok := a.results.Best(variant, strings.TrimSpace(bestContext))
	line := i18n.Text(a.selector.Current(), i18n.KeyNoResults)
	if ok {
		line = stats.FormatScore(best, info.Unit)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <game>",
		Short: "List recorded attempts of a game",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyContext, "context", "", "only list attempts with this context")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to the last N attempts")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the trend line")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	variant, err := games.Parse(args[0])
	if err != nil {
		return err
	}
	cfg := model.HistoryConfig{
		Variant:     variant,
		Context:     strings.TrimSpace(historyContext),
		Last:        historyLast,
		CurveWindow: historyCurveWindow,
	}
	if cfg.Last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow < 0 {
		return fmt.Errorf("--curve-window must be >= 0")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	attempts := a.results.Attempts(cfg.Variant, cfg.Context)
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}
	info, _ := games.Lookup(cfg.Variant)
	out := cmd.OutOrStdout()
	if err := stats.RenderHistory(out, attempts, info.Unit, cfg.CurveWindow, stats.TerminalWidth(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [tag]",
		Short: "Show or set the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLangCmd,
	}
}

func runLangCmd(cmd *cobra.Command, args []string) error {
	var next locale.Locale
	if len(args) == 1 {
		parsed, err := locale.Parse(args[0])
		if err != nil {
			return err
		}
		next = parsed
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		current := a.selector.Current()
		for _, l := range locale.Supported() {
			marker := " "
			if l == current {
				marker = "*"
			}
			if _, err := fmt.Fprintf(out, "%s %-8s %s\n", marker, l, i18n.LanguageName(l)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	a.selector.Set(a.ctx, next)
	if _, err := fmt.Fprintf(out, "%s: %s\n", i18n.Text(next, i18n.KeyLanguage), i18n.LanguageName(next)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
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
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# mindgym configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# db = %q

[locale]
# fallback = %q   # Used on first run when the system language is unsupported (en, zh-Hans)
`,
		config.DefaultDBPath(),
		defaultFallback,
	)
}

func validateConfig(cfg model.Config) (locale.Locale, error) {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return locale.Locale{}, fmt.Errorf("--db must not be empty")
	}
	fallback, err := locale.Parse(cfg.FallbackLocale)
	if err != nil {
		return locale.Locale{}, fmt.Errorf("--fallback-lang: %w", err)
	}
	return fallback, nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
