package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the API and open a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLogin(cmd.Context(), username, password)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (prompted when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (a *App) runLogin(ctx context.Context, username, password string) error {
	var err error
	if username == "" {
		if username, err = a.promptLine("Username: "); err != nil {
			return a.report(err)
		}
	}
	if password == "" {
		if password, err = a.promptPassword(); err != nil {
			return a.report(err)
		}
	}

	result, err := a.client.Login(ctx, username, password)
	if err != nil {
		return a.report(err)
	}
	a.noticef("%s Welcome, %s!", result.Message, username)
	return a.runHome(ctx)
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.Logout(); err != nil {
				return app.report(err)
			}
			app.noticef("You have been logged out.")
			return nil
		},
	}
}
