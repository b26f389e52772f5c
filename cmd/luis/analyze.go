package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"luis-client/internal/common/config"
	"luis-client/internal/common/logger"
	"luis-client/pkg/luis"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Send an utterance to the LUIS app",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			client, err := clientFromFlags(cmd)
			if err != nil {
				return describeError(err)
			}

			result, err := client.Analyze(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return describeError(err)
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			writeText(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().String("url", "", "LUIS app URL, e.g. https://<region>.api.cognitive.microsoft.com/luis/v2.0/apps/<id>?subscription-key=<key>&q=")
	cmd.Flags().Duration("timeout", 0, "request timeout (default from config, 30s)")

	return cmd
}

func clientFromFlags(cmd *cobra.Command) (*luis.Client, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	endpoint, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if endpoint == "" {
		endpoint = cfg.LUIS.EndpointURL
	}
	if timeout == 0 {
		timeout = cfg.LUIS.TimeoutDuration()
	}

	log := logger.NewNoOpLogger()
	if verbose {
		log = logger.NewZapAdapter(logger.New("debug", "console", "stderr"))
	}

	return luis.New(endpoint, luis.WithTimeout(timeout), luis.WithLogger(log))
}

func describeError(err error) error {
	switch {
	case luis.IsConfigurationError(err):
		return fmt.Errorf("no LUIS app URL: pass --url or set LUIS_ENDPOINT_URL")
	case luis.IsRequestError(err):
		if status := luis.StatusCode(err); status != 0 {
			return fmt.Errorf("LUIS returned HTTP %d: %w", status, err)
		}
		return fmt.Errorf("request failed: %w", err)
	default:
		return err
	}
}

func writeText(w io.Writer, result *luis.Result) {
	fmt.Fprintf(w, "query: %s\n", result.Query)

	if best := result.BestIntent(); best != nil {
		fmt.Fprintf(w, "top intent: %s (%s)\n", best.Name, scoreText(best.Score))
	} else {
		fmt.Fprintln(w, "top intent: none")
	}

	if len(result.Intents) > 0 {
		fmt.Fprintln(w, "intents:")
		for _, intent := range result.Intents {
			fmt.Fprintf(w, "  %-24s %s\n", intent.Name, scoreText(intent.Score))
		}
	}

	if len(result.Entities) > 0 {
		fmt.Fprintln(w, "entities:")
		for _, entity := range result.Entities {
			span := "-"
			if entity.StartIndex != nil && entity.EndIndex != nil {
				span = fmt.Sprintf("%d-%d", *entity.StartIndex, *entity.EndIndex)
			}
			fmt.Fprintf(w, "  %-24s %-24s %-8s %s\n", entity.Text, entity.Type, span, scoreText(entity.Score))
		}
	}
}

func writeJSON(w io.Writer, result *luis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func scoreText(score *float64) string {
	if score == nil {
		return "no score"
	}
	return fmt.Sprintf("%.4f", *score)
}
