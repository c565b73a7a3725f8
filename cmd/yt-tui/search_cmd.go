package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/justchokingaround/yt-tui/internal/database"
	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/tui/format"
	"github.com/justchokingaround/yt-tui/internal/youtube"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search YouTube and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.API.Timeout)
		defer cancel()

		client, err := youtube.NewFromConfig(ctx, cfg, database.NewSettingsStore(database.DB), debugMode, logger)
		if err != nil {
			return err
		}

		items, err := client.Search(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(items) == 0 {
			fmt.Printf("No results for %q\n", query)
			return nil
		}
		return printItems(os.Stdout, items)
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 10, "maximum number of results (1-50)")
}

// printItems writes one aligned row per item
func printItems(w io.Writer, items []media.Item) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCHANNEL\tDURATION\tVIEWS\tUPLOADED")
	now := time.Now()
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			format.Truncate(item.Title, 60),
			format.Truncate(item.Creator, 30),
			format.Duration(item.Duration),
			format.Views(item.ViewCount),
			format.Relative(item.PublishedAt, now),
		)
	}
	return tw.Flush()
}
