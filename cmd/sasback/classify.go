package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/intent"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Show which intent a message maps to",
	Long: `Run the intent classifier on a message and print the intent, its
confidence and the extracted parameters. No database or model is used.

  $ sasback classify "He pesado 72,5 kg y tengo un 18% de grasa"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printResult(cmd.OutOrStdout(), intent.Recognize(strings.Join(args, " ")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func printResult(w io.Writer, res intent.Result) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint(res.Kind), color.New(color.Faint).Sprintf("(%.2f)", res.Confidence))

	names := make([]string, 0, len(res.Params))
	for name := range res.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %v\n", name, res.Params[name])
	}
}
