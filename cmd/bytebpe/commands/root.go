package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leo-du/bytebpe/internal/config"
	"github.com/leo-du/bytebpe/internal/logging"
	"github.com/leo-du/bytebpe/internal/progress"
	"github.com/leo-du/bytebpe/internal/tokenizer"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	noColor bool

	loadPath  string
	learnPath string
	savePath  string
	vocabSize int

	// set by the help func so Execute can exit nonzero after usage output,
	// letting scripts tell a usage request from a successful run
	helpShown bool
)

var errUsage = errors.New("usage requested")

// rootCmd represents the base command. Invoked without a subcommand it runs
// the classic pipeline: load a model, train on a corpus, save the result —
// always in that order, each step optional.
var rootCmd = &cobra.Command{
	Use:   "bytebpe",
	Short: "Byte-level BPE subword vocabulary trainer",
	Long: `Bytebpe learns a byte-level BPE subword vocabulary from a corpus of
whitespace-separated tokens, and encodes or decodes text with a trained
vocabulary.

Actions given as flags run in a fixed order: --load, then --learn
(which discards any loaded model), then --save.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	if helpShown {
		return errUsage
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bytebpe/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet mode")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().StringVar(&loadPath, "load", "", "load a previously saved model")
	rootCmd.Flags().StringVar(&learnPath, "learn", "", "train on the corpus at this path")
	rootCmd.Flags().IntVar(&vocabSize, "vocab", 320, "target vocabulary size for --learn")
	rootCmd.Flags().StringVar(&savePath, "save", "", "save the current model")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpShown = true
		defaultHelp(cmd, args)
	})
}

func runRoot(cmd *cobra.Command, args []string) error {
	if loadPath == "" && learnPath == "" && savePath == "" {
		return cmd.Help()
	}

	cfg, err := setup()
	if err != nil {
		return err
	}

	model := tokenizer.NewModel()

	if loadPath != "" {
		if err := model.Load(loadPath, false); err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
		logging.Infof("loaded %d symbols from %s", model.VocabSize(), loadPath)
	}

	if learnPath != "" {
		vocab := vocabSize
		if !cmd.Flags().Changed("vocab") {
			vocab = cfg.Training.VocabSize
		}

		meters := newPhaseMeters(cfg)
		trainer := &tokenizer.Trainer{Model: model, Progress: meters.report}
		err := trainer.Learn(learnPath, vocab)
		meters.finish()
		if err != nil {
			return fmt.Errorf("training: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "learned %d symbols\n", model.VocabSize())
		}
	}

	if savePath != "" {
		if err := model.Save(savePath); err != nil {
			return fmt.Errorf("saving model: %w", err)
		}
		logging.Infof("saved %d symbols to %s", model.VocabSize(), savePath)
	}

	return nil
}

// setup loads configuration and initializes logging for any command that
// does real work.
func setup() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "error"
	}
	if err := logging.Init(level, cfg.Logging.File, cfg.Logging.Console); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	return cfg, nil
}

// phaseMeters adapts training phase callbacks onto terminal meters, one per
// phase, written to stderr so encoded output on stdout stays clean.
type phaseMeters struct {
	enabled bool
	colored bool
	phase   string
	cur     *progress.Meter
}

func newPhaseMeters(cfg *config.Config) *phaseMeters {
	return &phaseMeters{
		enabled: cfg.Training.Progress && !quiet,
		colored: cfg.CLI.Color && !noColor,
	}
}

func (p *phaseMeters) report(phase string, done, total int64) {
	if !p.enabled {
		return
	}
	if phase != p.phase {
		if p.cur != nil {
			p.cur.Finish()
		}
		p.cur = progress.New(os.Stderr, phase, total, p.colored)
		p.phase = phase
	}
	p.cur.Update(done)
}

func (p *phaseMeters) finish() {
	if p.cur != nil {
		p.cur.Finish()
		p.cur = nil
	}
}
