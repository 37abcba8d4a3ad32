package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fjglira/tutorialcheck/internal/parser"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks <file>",
	Short: "List the recognized tutorial blocks without executing anything",
	Long:  `Parses a tutorial file and prints each recognized block's line number, kind, and first content line. Useful for checking what would run before running it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		blocks, err := parser.NewMarkdownParser().Parse(args[0], content)
		if err != nil {
			return err
		}

		for _, block := range blocks {
			first := block.Content
			if idx := strings.IndexByte(first, '\n'); idx >= 0 {
				first = first[:idx]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%6d  %-6s  %s\n", block.Line, block.Kind, first)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d block(s)\n", len(blocks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}
