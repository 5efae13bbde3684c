package cmd

import (
	"context"
	"fmt"

	"github.com/byxorna/wrench/pkg/app"
	"github.com/byxorna/wrench/pkg/theme"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [show|toggle]",
	Short:     "Show or toggle the saved colour theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"show", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			dark := svc.Theme.IsDark()
			if len(args) == 1 && args[0] == "toggle" {
				var err error
				if dark, err = svc.Theme.Toggle(); err != nil {
					return fmt.Errorf("unable to save theme: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Name(dark))
			return nil
		})
	},
}
