package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHomeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the library dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runHome(cmd.Context())
		},
	}
}

// runHome aggregates both listings into the dashboard counters. The
// stat payloads are open-ended maps, so every counter tolerates a
// missing key by counting it as zero.
func (a *App) runHome(ctx context.Context) error {
	collection, err := a.client.Books(ctx, nil)
	if err != nil {
		return a.report(err)
	}
	wishlist, err := a.client.Wishlist(ctx, nil)
	if err != nil {
		return a.report(err)
	}

	cs, ws := collection.Stats, wishlist.Stats
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total books\t%d\n", cs.Int("total")+ws.Int("total"))
	fmt.Fprintf(w, "Books of J\t%d\n", cs.Int("mes_livres")+ws.Int("mes_souhaits"))
	fmt.Fprintf(w, "Books of K\t%d\n", cs.Int("livres_k")+ws.Int("souhaits_k"))
	fmt.Fprintf(w, "To read\t%d\n", cs.Int("a_lire"))
	fmt.Fprintf(w, "Reading\t%d\n", cs.Int("en_cours"))
	fmt.Fprintf(w, "Read\t%d\n", cs.Int("lus"))
	fmt.Fprintf(w, "Wishlist\t%d\n", ws.Int("total"))
	return w.Flush()
}
