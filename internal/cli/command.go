package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"codeberg.org/adtmanual/manualkit/internal"
	"codeberg.org/adtmanual/manualkit/internal/align"
	"codeberg.org/adtmanual/manualkit/internal/alttext"
	"codeberg.org/adtmanual/manualkit/internal/easyread"
	"codeberg.org/adtmanual/manualkit/internal/eli5"
	"codeberg.org/adtmanual/manualkit/internal/i18n"
	"codeberg.org/adtmanual/manualkit/internal/journal"
	"codeberg.org/adtmanual/manualkit/internal/llm"
	"codeberg.org/adtmanual/manualkit/internal/models"
	"codeberg.org/adtmanual/manualkit/internal/narrate"
	"codeberg.org/adtmanual/manualkit/internal/regen"
	"codeberg.org/adtmanual/manualkit/internal/translate"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "manualkit",
		Short: "Accessibility toolkit for the self-care manual",
		Long: `manualkit maintains the multilingual, accessibility-annotated
content of the self-care manual: JSON texts tables, translations,
easy-read and ELI5 adaptations, image alt text, narration audio and
word-level timecodes.

Examples:
  manualkit pages                         # List pages and entry counts
  manualkit translate 8 12               # Translate pages 8-12 to English
  manualkit easyread --lang es           # Generate easy-read variants
  manualkit timecodes --json content/i18n/es/texts.json --audio-folder .`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.manualkit.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.I18nDir, "i18n-dir", flags.I18nDir, "Root of the per-language texts.json tree")
	rootCmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "Chat provider: openai or gemini")
	rootCmd.PersistentFlags().StringVar(&flags.Model, "model", "", "Chat model name (provider default when empty)")
	rootCmd.PersistentFlags().StringVar(&flags.JournalPath, "journal", "", "Run journal path (default is the user state directory)")
	rootCmd.PersistentFlags().BoolVar(&flags.NoJournal, "no-journal", false, "Disable the run journal")

	viper.BindPFlag("i18n_dir", rootCmd.PersistentFlags().Lookup("i18n-dir"))
	viper.BindPFlag("chat.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("chat.model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.AddCommand(
		newTranslateCommand(flags),
		newEasyReadCommand(flags),
		newELI5Command(flags),
		newAltTextCommand(flags),
		newTimecodesCommand(flags),
		newRegenCommand(flags),
		newNarrateCommand(flags),
		newPagesCommand(flags),
		newModelsCommand(flags),
		newHistoryCommand(flags),
	)

	return rootCmd
}

// Execute runs the CLI.
func Execute() {
	flags := NewFlags()
	rootCmd := CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		InitConfig(flags.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// chatProvider builds the configured chat provider.
func chatProvider(flags *Flags) (llm.Provider, error) {
	key := GetOpenAIKey()
	if flags.Provider == "gemini" {
		key = GetGeminiKey()
	}
	return llm.NewProvider(&llm.Config{
		Provider: flags.Provider,
		APIKey:   key,
		Model:    flags.Model,
	})
}

// openJournal starts a journal run for a generating command. A broken
// journal degrades to a warning; the returned callback may be nil.
func openJournal(flags *Flags, command, lang string) (func(key, outcome string, d time.Duration), func()) {
	if flags.NoJournal {
		return nil, func() {}
	}

	path := flags.JournalPath
	if path == "" {
		path = journal.DefaultPath()
	}
	j, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal unavailable: %v\n", err)
		return nil, func() {}
	}
	if err := j.BeginRun(command, lang, flags.Model); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal: %v\n", err)
		j.Close()
		return nil, func() {}
	}
	return j.Recorder(), func() { j.Close() }
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTranslateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <page-start> [page-end]",
		Short: "Translate a page range into the target language",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			startPage, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page number %q", args[0])
			}
			endPage := startPage
			if len(args) == 2 {
				if endPage, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid page number %q", args[1])
				}
			}

			runner := &translate.Runner{
				I18nDir:   flags.I18nDir,
				StartPage: startPage,
				EndPage:   endPage,
				DryRun:    flags.DryRun,
			}

			opts := translate.Options{
				SourceLang:  flags.SourceLang,
				TargetLang:  flags.TargetLang,
				ContextSize: flags.ContextSize,
				// replaces the old fixed half-second sleep between calls
				Limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
			}
			if flags.Offline {
				runner.Offline = translate.NewOfflineTranslator()
				runner.Translator = translate.NewTranslator(nil, opts)
			} else if flags.DryRun {
				runner.Translator = translate.NewTranslator(nil, opts)
			} else {
				provider, err := chatProvider(flags)
				if err != nil {
					return err
				}
				runner.Translator = translate.NewTranslator(provider, opts)
			}

			if !flags.DryRun {
				onItem, closeJournal := openJournal(flags, "translate", flags.TargetLang)
				defer closeJournal()
				runner.OnItem = onItem
			}

			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d translated, %d failed\n", summary.Translated, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.SourceLang, "source", flags.SourceLang, "Source language code")
	cmd.Flags().StringVar(&flags.TargetLang, "target", flags.TargetLang, "Target language code")
	cmd.Flags().IntVar(&flags.ContextSize, "context-size", flags.ContextSize, "Previous translations kept as prompt context")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Show what would be translated without calling the API")
	cmd.Flags().BoolVar(&flags.Offline, "offline", false, "Use the built-in term table instead of the API")
	return cmd
}

func newEasyReadCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "easyread",
		Short: "Generate easy-read variants for text entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider llm.Provider
			if !flags.DryRun {
				var err error
				if provider, err = chatProvider(flags); err != nil {
					return err
				}
			}

			runner := &easyread.Runner{
				Generator:        easyread.NewGenerator(provider, flags.Lang),
				BaseDir:          flags.I18nDir,
				Lang:             flags.Lang,
				StartKey:         flags.StartKey,
				EndKey:           flags.EndKey,
				DryRun:           flags.DryRun,
				PreserveGlossary: flags.PreserveGlossary,
			}

			if !flags.DryRun {
				onItem, closeJournal := openJournal(flags, "easyread", flags.Lang)
				defer closeJournal()
				runner.OnItem = onItem
			}

			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d ok, %d issues, %d skipped\n",
				summary.Success, summary.Issues, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Lang, "lang", flags.Lang, "Language to process")
	cmd.Flags().StringVar(&flags.StartKey, "start", "", "First key of the range, like text-8-0")
	cmd.Flags().StringVar(&flags.EndKey, "end", "", "Last key of the range, like text-12-5")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Classify entries without calling the API")
	cmd.Flags().BoolVar(&flags.PreserveGlossary, "preserve-glossary", false, "Verify glossary terms survive the rewrite")
	return cmd
}

func newELI5Command(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eli5",
		Short: "Generate per-section ELI5 explanations from the HTML pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := chatProvider(flags)
			if err != nil {
				return err
			}

			onItem, closeJournal := openJournal(flags, "eli5", "both")
			defer closeJournal()

			runner := &eli5.Runner{
				Generator: eli5.NewGenerator(provider),
				I18nDir:   flags.I18nDir,
				PagesDir:  flags.PagesDir,
				Force:     flags.Force,
				OnItem:    onItem,
			}
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d pages, %d generated, %d skipped, %d failed\n",
				summary.Pages, summary.Generated, summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.PagesDir, "pages-dir", flags.PagesDir, "Directory holding the HTML pages")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Regenerate explanations that already exist")
	return cmd
}

func newAltTextCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alttext",
		Short: "Generate alt text for images and strip redundant aria attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := chatProvider(flags)
			if err != nil {
				return err
			}

			onItem, closeJournal := openJournal(flags, "alttext", "both")
			defer closeJournal()

			runner := &alttext.Runner{
				Generator: alttext.NewGenerator(provider),
				I18nDir:   flags.I18nDir,
				PagesDir:  flags.PagesDir,
				Force:     flags.Force,
				OnItem:    onItem,
			}
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d images, %d descriptions generated, %d skipped, %d failed\n",
				summary.Images, summary.Generated, summary.Skipped, summary.Failed)
			if summary.AttrsRemoved > 0 {
				fmt.Printf("Removed %d redundant attributes across %d pages\n",
					summary.AttrsRemoved, summary.PagesRewritten)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.PagesDir, "pages-dir", flags.PagesDir, "Directory holding the HTML pages")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Regenerate descriptions that already exist")
	return cmd
}

func newTimecodesCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timecodes",
		Short: "Generate word-level timecodes through forced alignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.JSONFile == "" || flags.AudioFolder == "" {
				return fmt.Errorf("--json and --audio-folder are required")
			}
			kind, err := i18n.ParseKind(flags.AlignKind)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			client, err := align.NewClient(ctx, flags.AlignURL, GetHFToken())
			if err != nil {
				return err
			}

			onItem, closeJournal := openJournal(flags, "timecodes", flags.AlignLang)
			defer closeJournal()

			runner := &align.Runner{
				Client:       client,
				JSONPath:     flags.JSONFile,
				AudioFolder:  flags.AudioFolder,
				OutputPath:   flags.Output,
				Language:     flags.AlignLang,
				Kind:         kind,
				ContinueFrom: flags.ContinueFrom,
				OnItem:       onItem,
			}
			summary, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d aligned, %d skipped, %d failed\n",
				summary.Aligned, summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.JSONFile, "json", "", "Document with texts and audioFiles")
	cmd.Flags().StringVar(&flags.AudioFolder, "audio-folder", "", "Folder the audio paths are relative to")
	cmd.Flags().StringVar(&flags.Output, "output", flags.Output, "Output file for timecode results")
	cmd.Flags().BoolVar(&flags.ContinueFrom, "continue-from", false, "Continue from the existing output file")
	cmd.Flags().StringVar(&flags.AlignURL, "align-url", "", "Alignment service base URL (hosted default when empty)")
	cmd.Flags().StringVar(&flags.AlignLang, "align-lang", flags.AlignLang, "Alignment language label")
	cmd.Flags().StringVar(&flags.AlignKind, "kind", flags.AlignKind, "Key kind to align: text, easyread or eli5")

	cmd.AddCommand(newCombineCommand(flags))
	return cmd
}

func newCombineCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine <dir>",
		Short: "Merge per-key timecode files into one combined file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := align.Combine(args[0], flags.Output)
			if err != nil {
				return err
			}
			fmt.Printf("Combined %d timecode entries into %s\n", count, flags.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Output, "output", flags.Output, "Combined output file")
	return cmd
}

func newRegenCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Batch-regenerate easy-read and ELI5 entries for a page range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := regen.ParseLanguages(flags.Language)
			if err != nil {
				return err
			}
			types, err := regen.ParseContentTypes(flags.ContentType)
			if err != nil {
				return err
			}
			provider, err := chatProvider(flags)
			if err != nil {
				return err
			}

			onItem, closeJournal := openJournal(flags, "regen", flags.Language)
			defer closeJournal()

			runner := &regen.Runner{
				Provider:    provider,
				I18nDir:     flags.I18nDir,
				StartPage:   flags.StartPage,
				EndPage:     flags.EndPage,
				Langs:       langs,
				Types:       types,
				Concurrency: flags.Concurrency,
				OnItem:      onItem,
			}
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d regenerated, %d failed\n", summary.Success, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d items failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.StartPage, "start-page", 0, "First page of the range")
	cmd.Flags().IntVar(&flags.EndPage, "end-page", 0, "Last page of the range")
	cmd.Flags().StringVar(&flags.Language, "language", flags.Language, "Language: en, es or both")
	cmd.Flags().StringVar(&flags.ContentType, "type", flags.ContentType, "Content type: easyread, eli5 or both")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Maximum in-flight API calls")
	cmd.MarkFlagRequired("start-page")
	cmd.MarkFlagRequired("end-page")
	return cmd
}

func newNarrateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrate",
		Short: "Generate narration audio for text entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			speaker, err := narrate.NewOpenAISpeaker(narrate.Config{
				OpenAIKey: GetOpenAIKey(),
				Model:     flags.TTSModel,
				Voice:     flags.Voice,
				Speed:     flags.Speed,
				CacheDir:  flags.CacheDir,
			})
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			onItem, closeJournal := openJournal(flags, "narrate", flags.Lang)
			defer closeJournal()

			runner := &narrate.Runner{
				Speaker:   speaker,
				I18nDir:   flags.I18nDir,
				AudioDir:  flags.AudioDir,
				Lang:      flags.Lang,
				StartPage: flags.StartPage,
				EndPage:   flags.EndPage,
				Force:     flags.Force,
				OnItem:    onItem,
			}
			_, err = runner.Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&flags.Lang, "lang", flags.Lang, "Language to narrate")
	cmd.Flags().StringVar(&flags.AudioDir, "audio-dir", flags.AudioDir, "Directory for narration audio")
	cmd.Flags().IntVar(&flags.StartPage, "start-page", 0, "First page of the range (0 for all)")
	cmd.Flags().IntVar(&flags.EndPage, "end-page", 0, "Last page of the range (0 for all)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Regenerate audio that already exists")
	cmd.Flags().StringVar(&flags.TTSModel, "tts-model", "", "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.Voice, "voice", "", "OpenAI voice: alloy, nova, shimmer, ...")
	cmd.Flags().Float64Var(&flags.Speed, "speed", flags.Speed, "Speech speed (0.25 to 4.0)")
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", "", "Content-hash audio cache directory")

	viper.BindPFlag("tts.model", cmd.Flags().Lookup("tts-model"))
	viper.BindPFlag("tts.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("tts.speed", cmd.Flags().Lookup("speed"))
	return cmd
}

func newPagesCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List pages, entry counts and suggested translate ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := i18n.Load(i18n.TextsPath(flags.I18nDir, flags.SourceLang))
			if err != nil {
				return err
			}
			pages := i18n.Inventory(table)
			if len(pages) == 0 {
				return fmt.Errorf("no text entries found in the %s table", flags.SourceLang)
			}
			fmt.Print(i18n.FormatInventory(pages))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.SourceLang, "lang", flags.SourceLang, "Language table to inventory")
	return cmd
}

func newModelsCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available OpenAI models for the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := models.NewLister(GetOpenAIKey())
			return lister.ListAvailableModels()
		},
	}
}

func newHistoryCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generating runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.JournalPath
			if path == "" {
				path = journal.DefaultPath()
			}
			j, err := journal.Open(path)
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.Recent(flags.HistoryCount)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet")
				return nil
			}
			for _, run := range runs {
				model := run.Model
				if model == "" {
					model = "default"
				}
				fmt.Printf("%s  %-10s %-5s %-16s %d ok, %d failed\n",
					run.StartedAt.Format("2006-01-02 15:04"),
					run.Command, run.Lang, model, run.Succeeded, run.Failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&flags.HistoryCount, "count", "n", flags.HistoryCount, "Number of runs to list")
	return cmd
}
