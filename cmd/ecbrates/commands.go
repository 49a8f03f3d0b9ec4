package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/config"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	domainservice "github.com/damon-houk/ecb-exchange-rates/internal/domain/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/pkg/ecbrates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app holds what PersistentPreRunE builds for the subcommands
type app struct {
	cfg    *config.Config
	logger logger.Logger
}

// client builds an ECB client from the loaded configuration
func (a *app) client(reg prometheus.Registerer) *ecbrates.Client {
	return ecbrates.New(ecbrates.Options{
		BaseURL:    a.cfg.ECB.BaseURL,
		Timeout:    a.cfg.ECB.Timeout,
		UserAgent:  a.cfg.ECB.UserAgent,
		Logger:     a.logger,
		Registerer: reg,
	})
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ecbrates",
		Short:         "European Central Bank reference exchange rates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			level := cfg.Log.Level
			if override, _ := cmd.Flags().GetString("log-level"); override != "" {
				level = override
			}

			a.cfg = cfg
			a.logger = logger.NewJSONLogger(cmd.ErrOrStderr(), logger.ParseLevel(level))
			logger.SetDefaultLogger(a.logger)
			return nil
		},
	}

	root.PersistentFlags().String("env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().Bool("json", false, "print JSON")

	root.AddCommand(
		newRateCmd(a),
		newRatesCmd(a),
		newSeriesCmd(a),
		newCurrenciesCmd(a),
		newLastUpdateCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return root
}

func newRateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate FROM TO",
		Short: "Print the rate converting one unit of FROM into TO",
		Example: `  ecbrates rate USD GBP --date 2024-12-27
  ecbrates rate EUR JPY --updated-after 2024-12-27T10:00:00+01:00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, updatedAfter, err := dateFlags(cmd)
			if err != nil {
				return err
			}

			b := a.client(nil).Exchange().FromCurrency(args[0]).ToCurrency(args[1]).Date(date)
			if updatedAfter != nil {
				b.UpdatedAfter(*updatedAfter)
			}

			quote, err := b.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, quote, quote.String())
		},
	}
	addDateFlags(cmd)
	return cmd
}

func newRatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rates FROM TO[,TO...]",
		Short:   "Print the rates from one currency into several",
		Example: "  ecbrates rates EUR USD,GBP,JPY --date 2024-12-27",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, updatedAfter, err := dateFlags(cmd)
			if err != nil {
				return err
			}

			b := a.client(nil).Exchange().FromCurrency(args[0]).ToCurrencies(splitList(args[1])...).Date(date)
			if updatedAfter != nil {
				b.UpdatedAfter(*updatedAfter)
			}

			quotes, err := b.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, quotes.Quotes(), quotes.String())
		},
	}
	addDateFlags(cmd)
	return cmd
}

func newSeriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "series START END",
		Short:   "Print the rates to EUR published between two dates",
		Example: "  ecbrates series 2024-12-01 2024-12-31 --currencies USD,GBP",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(args[0])
			if err != nil {
				return err
			}
			end, err := parseDate(args[1])
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("currencies")

			ts, err := a.client(nil).TimeSeries(cmd.Context(), start, end, splitList(raw)...)
			if err != nil {
				return err
			}

			var text strings.Builder
			for _, date := range ts.Dates() {
				rates, _ := json.Marshal(ts.Rates(date))
				fmt.Fprintf(&text, "%s %s\n", date, rates)
			}
			return printResult(cmd, ts, strings.TrimSuffix(text.String(), "\n"))
		},
	}
	cmd.Flags().String("currencies", "", "comma separated currencies (default: the major currencies)")
	return cmd
}

func newCurrenciesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies published on the most recent working day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			currencies := a.client(nil).SupportedCurrencies(cmd.Context())
			return printResult(cmd, currencies, strings.Join(currencies, " "))
		},
	}
}

func newLastUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "last-update [DATE]",
		Short: "Print when the rates for a date are published (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := domainservice.Today(time.Now())
			if len(args) == 1 {
				var err error
				if date, err = parseDate(args[0]); err != nil {
					return err
				}
			}

			at := a.client(nil).LastUpdateTime(date)
			return printResult(cmd, at, at.Format(time.RFC3339))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ecbrates %s (commit %s)\n", version, commit)
		},
	}
}

func addDateFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "calendar date YYYY-MM-DD (default: today in Europe/Brussels)")
	cmd.Flags().String("updated-after", "", "RFC 3339 instant the rates must have been published after")
}

func dateFlags(cmd *cobra.Command) (time.Time, *time.Time, error) {
	date := domainservice.Today(time.Now())
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		var err error
		if date, err = parseDate(raw); err != nil {
			return time.Time{}, nil, err
		}
	}

	raw, _ := cmd.Flags().GetString("updated-after")
	if raw == "" {
		return date, nil, nil
	}

	updatedAfter, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid --updated-after %q, expected RFC 3339", raw)
	}
	return date, &updatedAfter, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.ParseInLocation(entity.DateLayout, raw, domainservice.PublisherLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// printResult writes v as indented JSON when --json is set, text otherwise
func printResult(cmd *cobra.Command, v interface{}, text string) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, v)
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
