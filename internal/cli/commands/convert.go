package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logkit/pkg/config"
	"github.com/ccollicutt/logkit/pkg/converter"
	"github.com/ccollicutt/logkit/pkg/filter"
	"github.com/ccollicutt/logkit/pkg/output"
	"github.com/ccollicutt/logkit/pkg/parser"
	"github.com/ccollicutt/logkit/pkg/webhook"
)

// ConvertUsage is printed when log2json gets the wrong number of arguments.
const ConvertUsage = "log2json <log_file_path>"

// StdinPath selects standard input instead of a file.
const StdinPath = "-"

// ConvertOptions holds command-line options for log2json.
type ConvertOptions struct {
	GlobalOptions

	Output  string
	Filter  string
	Summary bool

	// Webhook options
	WebhookURL       string
	WebhookToken     string
	WebhookBatchSize int
}

// NewConvertCommand creates the log2json command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   ConvertUsage,
		Short: "Convert a newline-delimited JSON log into a JSON array",
		Long: `Read a log file with one JSON value per line and print all of them as a
single pretty-printed JSON array.

Blank lines are skipped. Lines that are not valid JSON are reported on
stderr as "Error parsing line: <detail>" and left out of the output.
Lines may end in \n, \r\n or \r.

Use "-" as the path to read standard input. A file named "-" can be
given as "./-".

Exit codes:
  0 - Conversion finished (even if some lines were malformed)
  1 - Wrong number of arguments
  2 - File access, configuration or runtime error`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &UsageError{Usage: ConvertUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	opts.GlobalOptions.Bind(cmd)

	cmd.Flags().StringVarP(&opts.Output, "output", "o", string(config.DefaultOutput), "Output format (json|yaml|ndjson)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Keep only records matching a jq expression")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print line counts to stderr after the output")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().IntVar(&opts.WebhookBatchSize, "webhook-batch-size", 0, "Records per webhook request (0 sends all at once)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	path := args[0]
	ctx := commandContext(cmd)

	cfg, err := opts.setup(ctx, cmd)
	if err != nil {
		return err
	}
	applyConvertFlags(cmd, opts, &cfg.Convert)

	formatter, err := createFormatter(cfg.Convert.Output)
	if err != nil {
		return err
	}

	convOpts := []converter.ConverterOption{
		converter.WithDiagnostics(cmd.ErrOrStderr()),
	}
	if cfg.Convert.Filter != "" {
		f, err := filter.Compile(cfg.Convert.Filter)
		if err != nil {
			return err
		}
		log.Debug().Str("filter", f.String()).Msg("filtering records")
		convOpts = append(convOpts, converter.WithFilter(f))
	}
	conv := converter.New(convOpts...)

	log.Debug().Str("source", path).Str("output", formatter.Name()).Msg("converting")

	var result *converter.Result
	if path == StdinPath {
		result, err = conv.Run(ctx, parser.NewReaderSource(cmd.InOrStdin(), "<stdin>"))
	} else {
		result, err = conv.ConvertFile(ctx, path)
	}
	if err != nil {
		return err
	}

	report := output.NewReport(result)
	if report.HasFailures() {
		log.Info().
			Int("failed", report.Summary.Failed).
			Int("written", report.Summary.Records).
			Msg("malformed lines were skipped")
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if cfg.Convert.Summary {
		if err := output.WriteSummary(cmd.ErrOrStderr(), report); err != nil {
			return err
		}
	}

	// Webhook failures are logged but don't fail the conversion.
	sendWebhooks(ctx, collectWebhooks(&cfg.Convert, opts), report)

	return nil
}

// applyConvertFlags copies explicitly set flags over the file configuration.
func applyConvertFlags(cmd *cobra.Command, opts *ConvertOptions, cc *config.ConvertConfig) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cc.Output = config.OutputFormat(opts.Output)
	}
	if flags.Changed("filter") {
		cc.Filter = opts.Filter
	}
	if flags.Changed("summary") {
		cc.Summary = opts.Summary
	}
}

// webhookPayload picks the webhook body encoding matching the output format.
func webhookPayload(format config.OutputFormat) webhook.Payload {
	if format == config.OutputNDJSON {
		return webhook.PayloadNDJSON
	}
	return webhook.PayloadJSON
}

func createFormatter(format config.OutputFormat) (output.Formatter, error) {
	switch format {
	case config.OutputJSON:
		return output.NewJSONFormatter(output.FormatOptions{}), nil
	case config.OutputYAML:
		return output.NewYAMLFormatter(), nil
	case config.OutputNDJSON:
		return output.NewNDJSONFormatter(), nil
	default:
		return nil, config.ValidateOutput(format)
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cc *config.ConvertConfig, opts *ConvertOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cc.Webhooks)+1)
	webhooks = append(webhooks, cc.Webhooks...)

	if opts.WebhookURL != "" {
		webhooks = append(webhooks, config.WebhookConfig{
			Name:      "cli",
			URL:       opts.WebhookURL,
			Token:     opts.WebhookToken,
			Timeout:   config.DefaultWebhookTimeout,
			BatchSize: opts.WebhookBatchSize,
		})
	}

	for i := range webhooks {
		if webhooks[i].Payload == "" {
			webhooks[i].Payload = string(webhookPayload(cc.Output))
		}
	}

	return webhooks
}

// sendWebhooks posts the report to every webhook and logs the outcome.
func sendWebhooks(ctx context.Context, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:       wh.URL,
			Token:     wh.Token,
			Timeout:   wh.Timeout,
			Payload:   webhook.Payload(wh.Payload),
			BatchSize: wh.BatchSize,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			log.Info().
				Str("webhook", name).
				Int("status", resp.StatusCode).
				Int("requests", resp.Requests).
				Int("records", resp.Records).
				Dur("duration", resp.Duration).
				Msg("webhook sent")
		} else {
			log.Warn().
				Str("webhook", name).
				Int("records_sent", resp.Records).
				Err(resp.Error).
				Msg("webhook failed")
		}
	}
}
