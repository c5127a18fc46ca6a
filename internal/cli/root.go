package cli

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the biblio command tree and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd assembles the command tree around a shared App.
func NewRootCmd(version string) *cobra.Command {
	app := &App{
		out:    os.Stdout,
		errOut: os.Stderr,
		stdin:  os.Stdin,
		reader: bufio.NewReader(os.Stdin),
	}

	var (
		baseURL     string
		sessionFile string
		debug       bool
	)

	root := &cobra.Command{
		Use:           "biblio",
		Short:         "Manage your personal book collection and wishlist",
		Long:          "biblio is a command line front-end to a personal book catalogue API:\na reading collection with ratings and statuses, and a wishlist of books to buy.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(baseURL, sessionFile, debug)
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (default from BIBLIO_BASE_URL)")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", "", "path of the session file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&app.yes, "yes", "y", false, "answer yes to all confirmations")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newHomeCmd(app),
		newCollectionCmd(app),
		newWishlistCmd(app),
		newShowCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newMoveCmd(app),
		newProbeCmd(app),
	)
	return root
}
