package cli

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/tutorialcheck/internal/config"
)

var (
	cfgFile string
	verbose bool
	debug   bool
	log     = logrus.New()
)

// rootCmd is the base command for tutorialcheck.
var rootCmd = &cobra.Command{
	Use:   "tutorialcheck",
	Short: "Verify that shell commands in markdown tutorials behave as claimed",
	Long: `tutorialcheck parses a markdown tutorial, executes its bash-env and
bash-exec fenced code blocks in one persistent shell session, and checks
bash-output blocks against the previous command's captured stdout.

Recognized fence tags (exact, case-sensitive):
  bash-env     setup command; only its side effects matter
  bash-exec    command whose stdout the next bash-output block may check
  bash-output  expected stdout of the most recent bash-exec block`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		switch {
		case debug:
			log.SetLevel(logrus.DebugLevel)
		case verbose:
			log.SetLevel(logrus.InfoLevel)
		default:
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tutorialcheck.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file. A missing file is only an error when
// the user named it explicitly; the default path falls back to defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if !cmd.Flags().Changed("config") && errors.Is(err, os.ErrNotExist) {
			cfg = config.DefaultConfig()
		} else {
			return nil, err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	// Flags outrank the config file.
	if !verbose && !debug {
		if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
			log.SetLevel(level)
		}
	}

	return cfg, nil
}
