// shipi18n — CLI client for the Shipi18n translation service: translates
// JSON locale files and reconciles the results locally.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/Shipi18n/shipi18n-cli/api"
	"github.com/Shipi18n/shipi18n-cli/config"
	"github.com/Shipi18n/shipi18n-cli/fallback"
	"github.com/Shipi18n/shipi18n-cli/i18n"
	"github.com/Shipi18n/shipi18n-cli/incremental"
	"github.com/Shipi18n/shipi18n-cli/langmeta"
	"github.com/Shipi18n/shipi18n-cli/locale"
	"github.com/Shipi18n/shipi18n-cli/settings"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shipi18n",
		Short: "Translate JSON locale files with the Shipi18n API",
		Long: `shipi18n — translate JSON locale files with the Shipi18n API.

Sends your source locale file for translation and writes one JSON file per
target language. Regional variants (pt-BR, es-MX) fall back to their base
language, untranslated gaps fall back to the source text, and repeat runs
only translate keys that are still missing somewhere.

Commands:
  status      Show project info and translation progress
  init        Create a .shipi18n.yaml config file
  translate   Translate the source locale file
  auth        Manage the API key

Configuration lives in .shipi18n.yaml at the project root; every setting
can be overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newInitCmd(),
		newTranslateCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shipi18n version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// init (create config scaffold)
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var (
		source string
		langs  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .shipi18n.yaml config file",
		Long: `Create a .shipi18n.yaml config file in the project root.

Examples:
  shipi18n init
  shipi18n init --source locales/en.json --langs es,fr,pt-BR`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if existing, err := config.Load(rootDir); err != nil {
				return err
			} else if existing != nil {
				return fmt.Errorf("%s already exists", config.FileName)
			}

			cfg := config.Default()
			if source != "" {
				cfg.Source = source
			}
			if langs != "" {
				cfg.TargetLanguages = parseLangs(langs)
			}

			if err := cfg.Save(rootDir); err != nil {
				return err
			}
			logSuccess("Created %s", config.FileName)
			if len(cfg.TargetLanguages) == 0 {
				logInfo("Add target languages to the config or pass --langs on translate")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source locale file path")
	cmd.Flags().StringVar(&langs, "langs", "", "Target languages (comma-separated)")

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: project info + translation progress)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show project info and translation progress",
		Long: `Show the configured project and per-language translation progress.

Compares each saved language file against the source document and reports
how many keys are translated. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	if cfg == nil {
		logInfo("No %s found. Run 'shipi18n init' first.", config.FileName)
		return nil
	}

	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Source:     %s (%s)\n", cfg.Source, cfg.SourceLanguage)
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "  Languages:  %s\n", strings.Join(cfg.TargetLanguages, ", "))
	fmt.Fprintf(os.Stderr, "  Fallback:   source=%v regional=%v\n",
		cfg.FallbackToSourceEnabled(), cfg.RegionalFallbackEnabled())
	fmt.Fprintln(os.Stderr)

	source, err := locale.ReadFile(cfg.SourcePath(rootDir))
	if err != nil {
		logWarning("Cannot read source file: %v", err)
		return nil
	}
	total := locale.LeafCount(source)

	fmt.Fprintf(os.Stderr, "%sProgress%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	for _, lang := range cfg.TargetLanguages {
		meta := langmeta.Resolve(lang)
		doc, err := locale.ReadFile(cfg.OutputPath(rootDir, lang))
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s %-8s %-24s not translated yet\n", meta.Flag, lang, meta.Name)
			continue
		}
		missing := locale.LeafCount(locale.FindMissingKeys(source, doc))
		translated := total - missing
		fmt.Fprintf(os.Stderr, "  %s %-8s %-24s %d/%d (%d%%)\n",
			meta.Flag, lang, meta.Name, translated, total, percent(translated, total))
	}
	fmt.Fprintln(os.Stderr)

	return nil
}

func percent(part, total int) int {
	if total == 0 {
		return 100
	}
	return part * 100 / total
}

// ---------------------------------------------------------------------------
// auth (API key management)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API key",
		Long: `Manage the Shipi18n API key.

The key is stored in ` + "`~/.local/share/shipi18n/auth.json`" + ` (0600).
It can always be overridden per invocation with --api-key or the
SHIPI18N_API_KEY environment variable.

Examples:
  shipi18n auth login                  Prompt for the API key
  shipi18n auth login --api-key KEY    Store the key non-interactively
  shipi18n auth status                 Show the stored key (masked)
  shipi18n auth logout                 Remove the stored key`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthStatusCmd(),
		newAuthLogoutCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Shipi18n API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(apiKey)
			if key == "" {
				fmt.Fprintf(os.Stderr, "Enter your Shipi18n API key: ")
				scanner := bufio.NewScanner(os.Stdin)
				if !scanner.Scan() {
					return fmt.Errorf("no input received")
				}
				key = strings.TrimSpace(scanner.Text())
			}
			if key == "" {
				return fmt.Errorf("API key is empty")
			}

			if err := settings.SetAPIKey(key); err != nil {
				return err
			}
			logSuccess("API key saved to %s", settings.FilePath())
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompted for when omitted)")

	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored API key (masked)",
		Run: func(cmd *cobra.Command, args []string) {
			creds := settings.Load()
			if creds.APIKey == "" {
				logInfo("No API key stored. Run 'shipi18n auth login'.")
				return
			}
			fmt.Fprintf(os.Stderr, "  Key:   %s\n", settings.MaskKey(creds.APIKey))
			fmt.Fprintf(os.Stderr, "  File:  %s\n", settings.FilePath())
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Remove(); err != nil {
				return err
			}
			logSuccess("API key removed")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate the source locale file",
		Long: `Translate the source locale file into every configured target language.

By default only keys missing from at least one saved language file are sent
(incremental translation); new results are merged into the existing files.
Regional variants fall back to their base language, remaining gaps fall
back to the source text, and every applied fallback is reported.

Examples:
  # Translate per .shipi18n.yaml
  shipi18n translate

  # Override languages and source file
  shipi18n translate --source locales/en.json --langs es,fr,pt-BR

  # Show what would be sent without calling the API
  shipi18n translate --dry-run

  # Retranslate everything from scratch
  shipi18n translate --full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(a)
		},
	}

	cmd.Flags().StringVar(&a.source, "source", "", "Source locale file path")
	cmd.Flags().StringVar(&a.sourceLang, "source-lang", "", "Source language code")
	cmd.Flags().StringVar(&a.langs, "langs", "", "Target languages (comma-separated)")
	cmd.Flags().StringVar(&a.output, "output", "", "Output directory for per-language files")

	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key (or "+settings.EnvAPIKey+" env var)")
	cmd.Flags().StringVar(&a.baseURL, "base-url", "", "Custom API base URL")

	cmd.Flags().BoolVar(&a.full, "full", false, "Retranslate everything, ignoring saved files")
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "Show what would be translated without calling the API")
	cmd.Flags().BoolVar(&a.noSourceFallback, "no-fallback", false, "Disable falling back to source text for gaps")
	cmd.Flags().BoolVar(&a.noRegionalFallback, "no-regional-fallback", false, "Disable regional base-language fallback")
	cmd.Flags().StringVar(&a.context, "context", "", "Domain hint forwarded to the translation service")

	cmd.Flags().DurationVar(&a.timeout, "timeout", 120*time.Second, "Request timeout")
	cmd.Flags().StringVar(&a.proxy, "proxy", "", "HTTP/HTTPS proxy URL")

	return cmd
}

type translateArgs struct {
	source, sourceLang, langs, output string
	apiKey, baseURL                   string
	full, dryRun                      bool
	noSourceFallback                  bool
	noRegionalFallback                bool
	context                           string
	timeout                           time.Duration
	proxy                             string
}

// effectiveConfig merges the config file with flag overrides.
func effectiveConfig(a translateArgs) (*config.Config, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if a.source != "" {
		cfg.Source = a.source
	}
	if a.sourceLang != "" {
		cfg.SourceLanguage = a.sourceLang
	}
	if a.langs != "" {
		cfg.TargetLanguages = parseLangs(a.langs)
	}
	if a.output != "" {
		cfg.OutputDir = a.output
	}
	if a.context != "" {
		cfg.Context = a.context
	}
	if a.noSourceFallback {
		off := false
		cfg.FallbackToSource = &off
	}
	if a.noRegionalFallback {
		off := false
		cfg.RegionalFallback = &off
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTranslate(a translateArgs) error {
	cfg, err := effectiveConfig(a)
	if err != nil {
		return err
	}

	source, err := locale.ReadFile(cfg.SourcePath(rootDir))
	if err != nil {
		return err
	}

	// Plan: diff against previously saved outputs unless --full.
	existing := make(map[string]locale.Document)
	if !a.full {
		for _, lang := range cfg.TargetLanguages {
			doc, err := locale.ReadFile(cfg.OutputPath(rootDir, lang))
			if err != nil {
				continue // no prior output for this language
			}
			existing[lang] = doc
		}
	}

	plan := incremental.Compute(source, existing, cfg.TargetLanguages)
	if plan.Nothing() {
		logSuccess("%s", i18n.T("Nothing to translate — all languages are up to date."))
		return nil
	}

	logInfo("Keys: %d total, %d already translated, %d to translate",
		plan.Stats.Total, plan.Stats.AlreadyTranslated, plan.Stats.ToTranslate)

	if a.dryRun {
		printDryRun(cfg, plan)
		return nil
	}

	key, err := settings.ResolveAPIKey(a.apiKey)
	if err != nil {
		return err
	}

	exp := fallback.Resolve(cfg.TargetLanguages, cfg.RegionalFallbackEnabled())
	if len(exp.RegionalMap) > 0 {
		logInfo("Regional fallback: %s", formatRegionalMap(exp.RegionalMap))
	}

	text, err := locale.Marshal(plan.ToTranslate)
	if err != nil {
		return err
	}

	client := api.NewClient(key)
	if a.baseURL != "" {
		client.BaseURL = a.baseURL
	}
	client.HTTPClient = api.MakeHTTPClient(a.proxy, a.timeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logInfo("%s", i18n.T("Translating..."))
	resp, err := client.Translate(ctx, api.Request{
		Text:                 string(text),
		SourceLanguage:       cfg.SourceLanguage,
		TargetLanguages:      exp.Targets,
		PreservePlaceholders: cfg.PreservePlaceholdersEnabled(),
		HTMLHandling:         cfg.HTMLHandling,
		SkipKeys:             cfg.SkipKeys,
		SkipPatterns:         cfg.SkipPatterns,
		Context:              cfg.Context,
	})
	if err != nil {
		return err
	}

	for _, w := range resp.Warnings {
		logWarning("%s", w)
	}
	if len(resp.Skipped) > 0 {
		logInfo("Skipped %d keys per skip rules", len(resp.Skipped))
	}

	// Reconcile against the document that was actually sent.
	results, info := fallback.Reconcile(resp.Translations, plan.ToTranslate, cfg.TargetLanguages, fallback.Options{
		FallbackToSource: cfg.FallbackToSourceEnabled(),
		RegionalFallback: cfg.RegionalFallbackEnabled(),
		RegionalMap:      exp.RegionalMap,
	})

	written := 0
	for _, lang := range cfg.TargetLanguages {
		final, ok := results[lang]
		if !ok || len(final) == 0 {
			logWarning("No translation for %s and no fallback available — skipping", lang)
			continue
		}
		if prior, ok := existing[lang]; ok {
			final = locale.DeepMerge(prior, final)
		}
		path := cfg.OutputPath(rootDir, lang)
		if err := locale.WriteFile(path, final); err != nil {
			return err
		}
		logSuccess("%s: wrote %s", lang, path)
		written++
	}

	reportFallbacks(info)
	counted := fmt.Sprintf(i18n.N("Translated %d key", "Translated %d keys", plan.Stats.ToTranslate),
		plan.Stats.ToTranslate)
	logSuccess("%s %s into %d languages.", i18n.T("Done."), counted, written)

	return nil
}

func printDryRun(cfg *config.Config, plan incremental.Plan) {
	flat := locale.Flatten(plan.ToTranslate)
	logInfo("Would translate %d keys into %s:", len(flat), strings.Join(cfg.TargetLanguages, ", "))
	for _, path := range locale.SortedPaths(flat) {
		fmt.Fprintf(os.Stderr, "  %s\n", path)
	}
	for _, lang := range cfg.TargetLanguages {
		fmt.Fprintf(os.Stderr, "  %-8s %d keys missing\n", lang, plan.MissingByLanguage[lang])
	}
}

func reportFallbacks(info fallback.Info) {
	if !info.Used {
		return
	}
	for lang, base := range info.RegionalFallbacks {
		logWarning("%s: no translation returned, used %s (regional fallback)", lang, base)
	}
	for _, lang := range info.SourceFallbackLanguages {
		logWarning("%s: no translation returned, used source text", lang)
	}
	langs := make([]string, 0, len(info.FallbackKeys))
	for lang := range info.FallbackKeys {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		keys := info.FallbackKeys[lang]
		logWarning("%s: %d keys filled from fallback (%s)", lang, len(keys), previewKeys(keys, 5))
	}
}

// previewKeys renders at most n dot-paths, eliding the rest.
func previewKeys(keys []string, n int) string {
	if len(keys) <= n {
		return strings.Join(keys, ", ")
	}
	return strings.Join(keys[:n], ", ") + ", ..."
}

func formatRegionalMap(m map[string]string) string {
	pairs := make([]string, 0, len(m))
	for lang, base := range m {
		pairs = append(pairs, lang+"→"+base)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ", ")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parseLangs(s string) []string {
	var langs []string
	for _, part := range strings.Split(s, ",") {
		if lang := strings.TrimSpace(part); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}
