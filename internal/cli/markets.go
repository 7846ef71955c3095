package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"histfetch/internal/tickers"
)

// newMarketsCmd lists the known ticker symbols per asset class.
func newMarketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "markets [market]",
		Short:     "List known tickers for an asset class",
		Long:      "Without arguments, lists the known asset classes. With a market name\n(crypto, stocks, forex, indices, commodities, etf, bonds), lists its tickers.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: tickers.Markets(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, "Available markets:")
				for _, name := range tickers.Markets() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}

			list, ok := tickers.ForMarket(args[0])
			if !ok {
				return fmt.Errorf("unknown market %q (known: %v)", args[0], tickers.Markets())
			}

			fmt.Fprintf(out, "Available %s tickers:\n", args[0])
			for _, t := range list {
				fmt.Fprintf(out, "  %s\n", t)
			}
			return nil
		},
	}
}
