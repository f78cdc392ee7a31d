package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mycelian/mycelian-memory/apiclient"
	"github.com/mycelian/mycelian-memory/apiclient/internal/config"
	"github.com/mycelian/mycelian-memory/apiclient/internal/logger"
	"github.com/mycelian/mycelian-memory/apiclient/tokenstore"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries state shared by all sub-commands once the root pre-run has
// loaded configuration.
type app struct {
	cfg    *config.Config
	origin string
	debug  bool
	logger zerolog.Logger
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "apiclient",
		Short:         "Call the backend API using the locally stored bearer token",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = logger.NewConsole(cmd.ErrOrStderr(), a.debug)
			log.Logger = a.logger

			cfg, err := config.New()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("origin") {
				cfg.Origin = a.origin
			}
			if a.debug {
				cfg.Debug = true
			}
			if cfg.IsProduction() && cfg.Debug {
				a.logger.Warn().Msg("debug logging enabled in production; request and response bodies will be logged")
			}
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.origin, "origin", "", "Backend origin, e.g. http://localhost:8080 (overrides APICLIENT_ORIGIN)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newTokenCmd(a))
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodDelete} {
		rootCmd.AddCommand(newRequestCmd(a, m, false))
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		rootCmd.AddCommand(newRequestCmd(a, m, true))
	}

	return rootCmd
}

func (a *app) openStore(ctx context.Context) (tokenstore.Store, error) {
	store, err := tokenstore.Open(ctx, a.cfg.TokenStore, a.cfg.TokenDB)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("kind", a.cfg.TokenStore).Str("path", a.cfg.TokenDB).Msg("token store opened")
	return store, nil
}

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set TOKEN",
		Short: "Store the bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Set(cmd.Context(), a.cfg.TokenKey, args[0]); err != nil {
				return err
			}
			a.logger.Info().Str("key", a.cfg.TokenKey).Msg("token stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			tok, ok, err := tokenstore.Provider(store, a.cfg.TokenKey).Token(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no token stored under %q", a.cfg.TokenKey)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Delete(cmd.Context(), a.cfg.TokenKey); err != nil {
				return err
			}
			a.logger.Info().Str("key", a.cfg.TokenKey).Msg("token cleared")
			return nil
		},
	})

	return cmd
}

func newRequestCmd(a *app, method string, withBody bool) *cobra.Command {
	var data string
	var headers []string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " PATH",
		Short: fmt.Sprintf("Send a %s request to %s/PATH", method, apiclient.BasePath),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := requestOptions(data, headers)
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := apiclient.New(a.cfg.Origin, tokenstore.Provider(store, a.cfg.TokenKey),
				apiclient.WithHTTPTimeout(a.cfg.HTTPTimeout),
				apiclient.WithDebugLogging(a.cfg.Debug),
				apiclient.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			resp, err := c.Do(cmd.Context(), method, args[0], opts...)
			if err != nil {
				return err
			}
			a.logger.Debug().
				Str("method", method).
				Str("url", resp.Request.URL).
				Int("status", resp.StatusCode()).
				Dur("elapsed", time.Since(start)).
				Msg("request complete")

			if body := resp.Body(); len(body) > 0 {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(body)); err != nil {
					return err
				}
			}
			if resp.IsError() {
				return fmt.Errorf("%s %s: %s", method, args[0], resp.Status())
			}
			return nil
		},
	}

	if withBody {
		cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	}
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as 'Key: Value' (repeatable)")
	return cmd
}

func requestOptions(data string, headers []string) ([]apiclient.RequestOption, error) {
	var opts []apiclient.RequestOption
	if data != "" {
		opts = append(opts,
			apiclient.WithHeader("Content-Type", "application/json"),
			apiclient.WithBody([]byte(data)),
		)
	}
	for _, h := range headers {
		k, v, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid header %q, want 'Key: Value'", h)
		}
		opts = append(opts, apiclient.WithHeader(strings.TrimSpace(k), strings.TrimSpace(v)))
	}
	return opts, nil
}
