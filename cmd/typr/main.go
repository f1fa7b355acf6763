// Package main provides the CLI entrypoint for typr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typr/internal/config"
	"github.com/verte-zerg/typr/internal/generator"
	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/stats"
	"github.com/verte-zerg/typr/internal/statsui"
	"github.com/verte-zerg/typr/internal/store"
	"github.com/verte-zerg/typr/internal/tui"
	"github.com/verte-zerg/typr/internal/typing"
	"github.com/verte-zerg/typr/internal/wordlist"
)

const (
	defaultLang        = "english200"
	defaultWords       = 50
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 10
)

var (
	configPath string

	practiceWords           int
	practiceLang            string
	practiceLangFile        string
	practiceNoBacktrack     bool
	practiceSuddenDeath     bool
	practiceCaseInsensitive bool
	practiceNoBackspace     bool
	practiceLookAhead       int
	practiceFocusWeak       bool
	practiceWeakTop         int
	practiceWeakFactor      float64
	practiceWeakWindow      int
	practiceNoSave          bool

	historyLast  int
	historyLang  string
	historySince string
	historyUntil string

	statsLang   string
	statsSince  string
	statsUntil  string
	statsLast   int
	statsWindow int
	statsChars  string
	statsTUI    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typr [PATH]",
		Short:         "Terminal typing test",
		Long:          "Terminal typing test. Reads test contents from PATH, or \"-\" for stdin, or samples the configured language.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	rootCmd.Flags().IntVarP(&practiceWords, "words", "w", defaultWords, "number of words")
	rootCmd.Flags().StringVarP(&practiceLang, "language", "l", defaultLang, "test language")
	rootCmd.Flags().StringVar(&practiceLangFile, "language-file", "", "read the test language from a file")
	rootCmd.Flags().BoolVar(&practiceNoBacktrack, "no-backtrack", false, "disable backtracking to completed words")
	rootCmd.Flags().BoolVar(&practiceSuddenDeath, "sudden-death", false, "restart the test on the first error")
	rootCmd.Flags().BoolVar(&practiceCaseInsensitive, "case-insensitive", false, "ignore letter case when matching")
	rootCmd.Flags().BoolVar(&practiceNoBackspace, "no-backspace", false, "disable backspace and ctrl+w")
	rootCmd.Flags().IntVar(&practiceLookAhead, "look-ahead", typing.NoLookAhead, "number of upcoming words to show (-1 shows all)")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias word selection toward weak keys")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak keys to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak keys")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions used to find weak keys")
	rootCmd.Flags().BoolVar(&practiceNoSave, "no-save", false, "do not record results")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func loadFileConfig() (config.FileConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func historyPath(fileCfg config.FileConfig) string {
	if fileCfg.HistoryFile != nil && *fileCfg.HistoryFile != "" {
		return *fileCfg.HistoryFile
	}
	return config.DefaultHistoryPath()
}

func runPracticeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "language", &practiceLang, fileCfg.DefaultLanguage)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyBoolConfig(cmd, "sudden-death", &practiceSuddenDeath, fileCfg.Practice.SuddenDeath)
	applyBoolConfig(cmd, "case-insensitive", &practiceCaseInsensitive, fileCfg.Practice.CaseInsensitive)
	applyBoolConfig(cmd, "no-backspace", &practiceNoBackspace, fileCfg.Practice.NoBackspace)
	applyIntConfig(cmd, "look-ahead", &practiceLookAhead, fileCfg.Practice.LookAhead)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)
	if fileCfg.Practice.Backtrack != nil && !cmd.Flags().Changed("no-backtrack") {
		practiceNoBacktrack = !*fileCfg.Practice.Backtrack
	}

	keyMap, err := fileCfg.ResolveKeyMap()
	if err != nil {
		return err
	}
	if conflicts := keyMap.Conflicts(); len(conflicts) > 0 {
		return errors.New(strings.Join(conflicts, "\n"))
	}

	opts := typing.DefaultOptions()
	opts.Backtracking = !practiceNoBacktrack
	opts.SuddenDeath = practiceSuddenDeath
	opts.CaseInsensitive = practiceCaseInsensitive
	opts.NoBackspace = practiceNoBackspace
	opts.LookAhead = practiceLookAhead

	cfg := model.Config{
		Lang:       practiceLang,
		Words:      practiceWords,
		Options:    opts,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    practiceWeakTop,
		WeakFactor: practiceWeakFactor,
		WeakWindow: practiceWeakWindow,
		NoSave:     practiceNoSave,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := loadPracticeWords(&cfg, args)
	if err != nil {
		return err
	}

	var st *store.Store
	if !cfg.NoSave || cfg.FocusWeak {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			if cfg.FocusWeak {
				return fmt.Errorf("failed to open db: %w", err)
			}
			logErrf("warning: key statistics disabled: failed to open db: %v\n", err)
			st = nil
		}
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	weakSet := map[rune]struct{}{}
	if cfg.FocusWeak {
		aggs, err := st.GetWeakChars(context.Background(), cfg.WeakWindow, cfg.Lang)
		if err != nil {
			logErrf("failed to load weak chars: %v\n", err)
		} else {
			weakSet = stats.SelectWeakChars(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-char focus yet; using normal generator")
			}
		}
	}

	m := tui.NewModel(tui.Deps{
		Config:  cfg,
		KeyMap:  keyMap,
		Theme:   fileCfg.ResolveTheme(),
		History: history.New(historyPath(fileCfg), os.Stderr),
		Store:   st,
		Gen:     generator.New(),
		Words:   words,
		WeakSet: weakSet,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadPracticeWords resolves the word source in priority order: a contents
// PATH, --language-file, then a named language. It records the source on cfg.
func loadPracticeWords(cfg *model.Config, args []string) ([]string, error) {
	switch {
	case len(args) == 1:
		words, err := wordlist.LoadWords(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot read test contents: %w", err)
		}
		cfg.Source = args[0]
		cfg.Verbatim = true
		return words, nil
	case practiceLangFile != "":
		words, err := wordlist.LoadWords(practiceLangFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read language file: %w", err)
		}
		cfg.Source = practiceLangFile
		return words, nil
	default:
		words, err := wordlist.LoadLanguage(cfg.Lang, config.DefaultLanguageDir())
		if err != nil {
			return nil, fmt.Errorf("%w\nRun: typr langs", err)
		}
		cfg.Source = cfg.Lang
		return words, nil
	}
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.Options.LookAhead < typing.NoLookAhead {
		return fmt.Errorf("--look-ahead must be >= 0, or -1 to show all words")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
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
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := writeConfigTemplate(path); err != nil {
		return err
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

// writeConfigTemplate creates the config file when it does not exist yet.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	km := config.DefaultKeyMap()
	theme := config.DefaultTheme()
	return fmt.Sprintf(`# typr configuration
# Uncomment a value to enable it. CLI flags override config values.

# default-language = %q
# history-file = "/path/to/history.csv"

[practice]
# words = %d               # Words per test
# backtrack = true         # Allow returning to completed words
# sudden-death = false     # Restart on the first error
# case-insensitive = false # Ignore letter case
# no-backspace = false     # Disable backspace and ctrl+w
# look-ahead = 3           # Upcoming words shown (omit to show all)
# focus-weak = false       # Bias practice toward weak keys
# weak-top = %d            # Number of weak keys to focus on
# weak-factor = %.1f       # Weight factor for weak keys
# weak-window = %d         # Recent sessions used to find weak keys

[key-map]
# Keys use "x", "C-x" (ctrl) or "A-x" (alt); named keys: Tab, Backspace, Enter, Esc, Delete, Space.
# quit = %q
# restart = %q
# repeat = %q
# practice-missed = %q
# practice-slow = %q
# new-test = %q

[theme]
# correct = %q
# incorrect = %q
# untyped = %q
# current = %q
# muted = %q
`,
		defaultLang,
		defaultWords,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		km.Quit, km.Restart, km.Repeat, km.PracticeMissed, km.PracticeSlow, km.NewTest,
		theme.Correct, theme.Incorrect, theme.Untyped, theme.Current, theme.Muted,
	)
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List installed languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := wordlist.Languages(config.DefaultLanguageDir())
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "show only the last N results")
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&historyUntil, "until", "", "end date (YYYY-MM-DD)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	filters := history.Filters{
		Language: historyLang,
		Since:    historySince,
		Until:    historyUntil,
	}
	if err := filters.Validate(); err != nil {
		return err
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	last := -1
	if cmd.Flags().Changed("last") {
		last = historyLast
	}
	return showHistory(cmd.OutOrStdout(), history.New(historyPath(fileCfg), os.Stderr), filters, last)
}

// showHistory prints the filtered records. A non-negative last keeps only the
// newest last records, so zero shows none; a negative last shows all.
func showHistory(w io.Writer, hist *history.Store, filters history.Filters, last int) error {
	view := stats.HistoryView{Path: hist.Path()}
	if _, err := os.Stat(hist.Path()); os.IsNotExist(err) {
		view.Missing = true
		return stats.RenderHistoryTable(w, view)
	}
	records, err := hist.Query(filters)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	view.Total = len(records)
	view.Records = records
	if last >= 0 {
		view.Records = records[max(len(records)-last, 0):]
		view.Limited = true
	}
	return stats.RenderHistoryTable(w, view)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&statsUntil, "until", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to the last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving average and per-key window in sessions")
	cmd.Flags().StringVar(&statsChars, "char", "", "characters for per-key curves, comma separated")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "open the interactive stats view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg := model.StatsConfig{
		Lang:        statsLang,
		Since:       statsSince,
		Until:       statsUntil,
		Last:        statsLast,
		CurveWindow: statsWindow,
		Chars:       statsChars,
	}
	if err := stats.Filters(cfg).Validate(); err != nil {
		return err
	}
	if cfg.Last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}

	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	hist := history.New(historyPath(fileCfg), os.Stderr)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("warning: key statistics unavailable: %v\n", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	if statsTUI {
		program := tea.NewProgram(statsui.NewModel(hist, st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), hist, st, cfg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	return stats.RenderReport(cmd.OutOrStdout(), report, cfg.CurveWindow)
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
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
