package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fjglira/tutorialcheck/internal/config"
	"github.com/fjglira/tutorialcheck/internal/parser"
	"github.com/fjglira/tutorialcheck/internal/reporter"
	"github.com/fjglira/tutorialcheck/internal/runner"
	"github.com/fjglira/tutorialcheck/internal/scanner"
	"github.com/fjglira/tutorialcheck/internal/verify"
)

var timeoutFlag string

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Execute and verify the tutorial blocks in the given files",
	Long: `Runs every bash-env and bash-exec block of each tutorial against a
persistent shell session and compares bash-output blocks against the
captured stdout. Directory arguments are scanned recursively for markdown
files; each file gets its own fresh session.

Exit status is 0 only when every block passes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("timeout") {
			cfg.Commands.Timeout = timeoutFlag
			if _, err := config.ParseTimeout(cfg.Commands.Timeout); err != nil {
				return fmt.Errorf("invalid --timeout value %q: %w", timeoutFlag, err)
			}
		}

		files, err := scanner.NewScanner().Resolve(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			log.Warn("No tutorial files found")
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rep := reporter.New(os.Stdout, cfg.Output.Color)
		p := parser.NewMarkdownParser()
		for _, file := range files {
			if err := checkFile(ctx, cfg, p, file, rep); err != nil {
				if ctx.Err() != nil {
					rep.Summary()
					return fmt.Errorf("interrupted")
				}
				rep.Fatal(file, err)
			}
		}
		rep.Summary()

		if rep.Failed() {
			return fmt.Errorf("verification failed")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&timeoutFlag, "timeout", "t", "", "per-command timeout (e.g. 30s, 0 to disable)")
	rootCmd.AddCommand(checkCmd)
}

// checkFile verifies one tutorial in its own shell session. A returned
// error is fatal for this file only (parse failure or session start
// failure); per-block failures land in the reporter instead.
func checkFile(ctx context.Context, cfg *config.Config, p parser.BlockParser, file string, rep *reporter.Reporter) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	blocks, err := p.Parse(file, content)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		log.Infof("No tutorial blocks in %s", file)
		return nil
	}
	log.Infof("Verifying %d block(s) in %s", len(blocks), file)

	timeout, _ := config.ParseTimeout(cfg.Commands.Timeout)
	session := runner.NewShellSession(runner.Options{
		Shell:   cfg.Shell.Path,
		Args:    cfg.Shell.Args,
		Timeout: timeout,
	})
	if err := session.Start(); err != nil {
		return err
	}
	defer session.Stop()

	outcomes, runErr := verify.New(session, log).Run(ctx, blocks)
	rep.Report(file, outcomes)
	return runErr
}
