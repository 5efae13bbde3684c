package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/app"
	"github.com/byxorna/wrench/pkg/screen"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/spf13/cobra"
)

var (
	yes bool

	deleteCmd = &cobra.Command{
		Use:   "delete <screen> <id>",
		Short: "Delete a client, vehicle, order, part or user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := v1.ParseID(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[1], err)
			}
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				tab, err := loadTab(ctx, cmd, svc, args[0])
				if err != nil {
					return err
				}
				p, err := tab.ActionByID(app.ActionDelete, id)
				if err != nil {
					return err
				}
				return runPending(ctx, cmd, p)
			})
		},
	}

	setRoleCmd = &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Replace a user's role",
		Long:  "Replace a user's role. Roles: " + strings.Join(roleNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := v1.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			role := v1.Role(strings.ToUpper(args[1]))
			if !v1.ValidRole(role) {
				return fmt.Errorf("unknown role %q, choose one of: %s", args[1], strings.Join(roleNames(), ", "))
			}
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				if !svc.Session.Current().IsAuthenticated() {
					return errNotLoggedIn
				}
				users, err := svc.API.ListUsers(ctx)
				if err != nil {
					return fmt.Errorf("unable to load users: %s", api.UserMessage(err))
				}
				u, ok := v1.Find(users, id)
				if !ok {
					return fmt.Errorf("users %s: %w", id, app.ErrUnknownRecord)
				}
				action := screen.ChangeRole(svc.API, func(v1.User) v1.Role { return role })
				ok, err = confirm(cmd, action.Prompt(u), yes)
				if err != nil || !ok {
					return err
				}
				msg, err := action.Run(ctx, u)
				if err != nil {
					return fmt.Errorf("%s failed: %s", action.Name, api.UserMessage(err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{deleteCmd, setRoleCmd} {
		c.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	}
}

func roleNames() []string {
	names := make([]string, len(v1.Roles))
	for i, r := range v1.Roles {
		names[i] = string(r)
	}
	return names
}

// runPending confirms and runs p. The outcome is printed by the screen's
// notifier.
func runPending(ctx context.Context, cmd *cobra.Command, p *app.Pending) error {
	ok, err := confirm(cmd, p.Prompt, yes)
	if err != nil || !ok {
		return err
	}
	return reported(p.Run(ctx))
}
