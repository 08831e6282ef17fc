package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/formatter"
	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

type formatOptions struct {
	date   string
	local  bool
	model  string
	output string
}

// formatOutput is what `minutesctl format` prints
type formatOutput struct {
	Source         string      `json:"source" yaml:"source"`
	Model          string      `json:"model,omitempty" yaml:"model,omitempty"`
	Fallback       bool        `json:"fallback" yaml:"fallback"`
	FallbackReason string      `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty"`
	Items          interface{} `json:"items" yaml:"items"`
}

func newFormatCommand() *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [FILE|-]",
		Short: "Format raw meeting notes into action items",
		Long: `Format raw meeting notes into structured action items.

Reads the notes from FILE, or from stdin when FILE is "-" or omitted, and
prints the items. The remote model is used when an API key is configured,
with the local rules as fallback.

Examples:
  minutesctl format --date 2026-01-15 notes.txt
  cat notes.txt | minutesctl format --date 2026-01-15 --local -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !reldate.IsDate(opts.date) {
				return fmt.Errorf("--date must be YYYY-MM-DD, got %q", opts.date)
			}

			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := formatter.NewFromConfig(cfg, nil, newLogger())
			if err != nil {
				return err
			}
			return runFormat(cmd.Context(), cmd.OutOrStdout(), svc, text, opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "Meeting date (YYYY-MM-DD), used to resolve relative deadlines")
	cmd.Flags().BoolVar(&opts.local, "local", false, "Use the local rules only")
	cmd.Flags().StringVar(&opts.model, "model", "", "Remote model to use instead of automatic selection")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "Output format: json, yaml")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	var r io.Reader = stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("input is empty")
	}
	return string(b), nil
}

func runFormat(ctx context.Context, out io.Writer, svc formatter.Service, text string, opts *formatOptions) error {
	if opts.model != "" && !formatter.IsKnownModel(opts.model) {
		return fmt.Errorf("unknown model %q (want one of %s)", opts.model, strings.Join(formatter.KnownModels, ", "))
	}
	res, err := svc.FormatRawText(ctx, formatter.FormatInput{
		RawText:         text,
		MeetingDate:     reldate.MustParse(opts.date),
		ModelPreference: opts.model,
		LocalOnly:       opts.local,
	})
	if err != nil {
		return err
	}

	doc := formatOutput{
		Source:         string(res.Source),
		Model:          res.Model,
		Fallback:       res.Fallback,
		FallbackReason: res.FallbackReason,
		Items:          res.Items,
	}

	switch opts.output {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}
