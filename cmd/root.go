package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/byxorna/wrench/pkg/app"
	"github.com/byxorna/wrench/pkg/config"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile string
		Inline     bool
	}{}

	root = &cobra.Command{
		Use:           "wrench",
		Short:         "Wrench is a terminal client for the workshop management backend",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				svc.ServeDebug()
				return app.Run(ctx, svc, !flags.Inline)
			})
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultPath, "configuration file")
	root.Flags().BoolVar(&flags.Inline, "inline", false, "draw in the current screen instead of the alternate screen")

	root.AddCommand(loginCmd, logoutCmd, whoamiCmd, listCmd, deleteCmd, setRoleCmd, themeCmd)
}

// openServices is swapped in tests.
var openServices = app.Open

func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *app.Services) error) error {
	ctx := cmd.Context()
	svc, err := openServices(ctx, flags.ConfigFile)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(ctx, svc)
}

// reportedError is a failure the user has already been told about.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported marks err as already shown by a notifier.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// errorText is what Execute prints for err, empty when it was already shown.
func errorText(err error) string {
	var r *reportedError
	if errors.As(err, &r) {
		return ""
	}
	return err.Error()
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		if msg := errorText(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
