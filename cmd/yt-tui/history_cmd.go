package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/justchokingaround/yt-tui/internal/database"
	"github.com/justchokingaround/yt-tui/internal/history"
	"github.com/justchokingaround/yt-tui/internal/media"
	"github.com/justchokingaround/yt-tui/internal/tui/format"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage watch history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched videos, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		oldest, _ := cmd.Flags().GetBool("oldest")

		svc, err := history.NewService(database.DB, logger)
		if err != nil {
			return err
		}

		order := history.SortRecentFirst
		if oldest {
			order = history.SortOldestFirst
		}
		entries, err := svc.GetHistory(history.FilterOptions{Limit: limit, SortBy: order})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No watch history")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WATCHED\tURL")
		now := time.Now()
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", format.Relative(entry.WatchedAt, now), fmt.Sprintf(media.WatchURLFormat, entry.VideoID))
		}
		return tw.Flush()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show watch history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := history.NewService(database.DB, logger)
		if err != nil {
			return err
		}
		stats, err := svc.GetStats()
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Printf("Watched videos: %d\n", stats.TotalItems)
		if stats.TotalItems == 0 {
			return nil
		}
		fmt.Printf("Today:          %d\n", stats.WatchedToday)
		fmt.Printf("Last 7 days:    %d\n", stats.WatchedRecent)
		fmt.Printf("First watched:  %s\n", format.Date(stats.FirstWatched))
		fmt.Printf("Last watched:   %s\n", format.Date(stats.LastWatched))
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <video-id>...",
	Short: "Forget watched videos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := history.NewService(database.DB, logger)
		if err != nil {
			return err
		}
		for _, id := range args {
			if err := svc.Remove(id); err != nil {
				return err
			}
		}
		fmt.Printf("Removed %d entries\n", len(args))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all watch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := history.NewService(database.DB, logger)
		if err != nil {
			return err
		}
		count := svc.Count()
		if err := svc.Clear(); err != nil {
			return err
		}
		fmt.Printf("Cleared %d entries\n", count)
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a JSON watch history file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.HistoryPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.New("no history file given and history_path is not set")
		}

		svc, err := history.NewService(database.DB, logger)
		if err != nil {
			return err
		}
		n, err := svc.ImportLegacy(path)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d entries from %s\n", n, absPath(path))
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "l", 20, "maximum number of entries (0 for all)")
	historyListCmd.Flags().Bool("oldest", false, "list oldest first")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyImportCmd)
}
