package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/diary/config"
	"github.com/dhamidi/diary/diary"
)

var version = "0.1.0"

var log = commonlog.GetLogger("diary.cli")

// globalOptions are the persistent flags and what they resolve to.
type globalOptions struct {
	configPath string
	verbosity  int
	logFile    string

	config *config.Config
	vocab  *diary.Vocabulary
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	path := o.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path, _ = config.Discover(wd)
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	verbosity := cfg.Log.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = o.verbosity
	}
	logFile := cfg.Log.File
	if cmd.Flags().Changed("log-file") {
		logFile = o.logFile
	}
	if logFile != "" {
		commonlog.Configure(verbosity, &logFile)
	} else {
		commonlog.Configure(verbosity, nil)
	}

	vocab, err := cfg.Vocabulary()
	if err != nil {
		return fmt.Errorf("vocabulary: %w", err)
	}
	o.config = cfg
	o.vocab = vocab
	if cfg.Path != "" {
		log.Infof("using configuration %s", cfg.Path)
	}
	return nil
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "diary",
		Short:         "Parse, check and format food diaries",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: diary.yaml, diary.yml or diary.toml in the working directory)")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newFmtCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newVocabCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
