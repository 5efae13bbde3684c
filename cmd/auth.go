package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/app"
	"github.com/spf13/cobra"
)

var (
	loginFlags = struct {
		Username      string
		PasswordStdin bool
	}{}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token for later runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				username, password, err := credentials(cmd)
				if err != nil {
					return err
				}
				if err := svc.Session.Login(ctx, username, password); err != nil {
					return fmt.Errorf("login failed: %s", api.UserMessage(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", svc.Session.Current().User)
				return nil
			})
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				if err := svc.Session.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				st := svc.Session.Current()
				if !st.IsAuthenticated() {
					return errNotLoggedIn
				}
				roles := make([]string, 0, len(st.Roles()))
				for _, r := range st.Roles() {
					roles = append(roles, string(r))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "user:  %s\n", st.User.Username)
				fmt.Fprintf(out, "name:  %s\n", st.User.DisplayName())
				fmt.Fprintf(out, "roles: %s\n", strings.Join(roles, ", "))
				fmt.Fprintf(out, "api:   %s\n", svc.API.BaseURL())
				return nil
			})
		},
	}
)

var errNotLoggedIn = fmt.Errorf("%w: run `wrench login` first", api.ErrNotAuthenticated)

func init() {
	loginCmd.Flags().StringVarP(&loginFlags.Username, "username", "u", "", "username")
	loginCmd.Flags().BoolVar(&loginFlags.PasswordStdin, "password-stdin", false, "read the password from stdin")
}

func credentials(cmd *cobra.Command) (string, string, error) {
	if !loginFlags.PasswordStdin {
		return app.PromptCredentials(cmd.InOrStdin(), cmd.OutOrStdout(), loginFlags.Username)
	}
	if loginFlags.Username == "" {
		return "", "", fmt.Errorf("--username is required with --password-stdin")
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", "", fmt.Errorf("unable to read password: %w", err)
		}
		return "", "", fmt.Errorf("empty password")
	}
	return loginFlags.Username, password, nil
}
