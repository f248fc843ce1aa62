package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
	"github.com/iota-uz/iota-periods/pkg/configuration"
)

const (
	exitFailure   = 1
	exitRejected  = 2
	exitTransport = 3
)

type rootFlags struct {
	apiURL   string
	token    string
	timeout  time.Duration
	timezone string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "periodctl",
		Short:         "Inspect periods and positions held by the periods API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "API base URL (default $PERIODS_API_URL)")
	cmd.PersistentFlags().StringVar(&flags.token, "token", "", "API token (default $PERIODS_API_TOKEN)")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "Request timeout (default $PERIODS_API_TIMEOUT)")
	cmd.PersistentFlags().StringVar(&flags.timezone, "timezone", "", "Zone dates are shown in (default $PERIODS_API_TIMEZONE)")

	cmd.AddCommand(newPositionsCmd(flags))
	cmd.AddCommand(newPeriodsCmd(flags))
	return cmd
}

// client builds the API client from the environment, overridden by flags.
func (f *rootFlags) client() (*remote.Client, error) {
	if _, err := configuration.LoadEnv([]string{".env", ".env.local"}); err != nil {
		return nil, err
	}
	opts := configuration.RemoteAPIOptions{}
	if err := env.Parse(&opts); err != nil {
		return nil, err
	}
	if f.apiURL != "" {
		opts.BaseURL = f.apiURL
	}
	if f.token != "" {
		opts.Token = f.token
	}
	if f.timeout > 0 {
		opts.Timeout = f.timeout
	}
	if f.timezone != "" {
		opts.Timezone = f.timezone
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return remote.NewClient(remote.Options{
		BaseURL:         opts.BaseURL,
		Headers:         opts.HeaderSet(),
		Timeout:         opts.Timeout,
		RequestIDHeader: "X-Request-ID",
		Location:        opts.Location(),
	})
}

func exitCode(err error) int {
	var apiErr *remote.APIError
	switch {
	case errors.As(err, &apiErr):
		return exitRejected
	case errors.Is(err, remote.ErrTransport):
		return exitTransport
	default:
		return exitFailure
	}
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		msg := err.Error()
		if m, ok := remote.Message(err); ok {
			msg = m
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(exitCode(err))
	}
}
