package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-hopper/internal/platform/tui"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryInteractive bool
	flagHistoryClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [script]",
	Short: "Show reading history",
	Long: `Display how long readers took to get through a script, or a summary of
all scripts when none is named.

Examples:
  hopper history
  hopper history solo --limit 20
  hopper history --interactive
  hopper history duo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of reads to show")
	historyCmd.Flags().BoolVar(&flagHistoryInteractive, "interactive", false, "Browse the history in a table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the history (of one script, or all)")
}

func runHistory(_ *cobra.Command, args []string) {
	catalog, err := openCatalog()
	if err != nil {
		fail("%v", err)
	}

	scriptID := ""
	if len(args) > 0 {
		scriptID = args[0]
		if _, ok := catalog.Lookup(scriptID); !ok {
			fmt.Printf("Note: %q is not a known script.\n", scriptID)
		}
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.Clear(scriptID); err != nil {
			fail("clearing history: %v", err)
		}
		if scriptID == "" {
			fmt.Println("History cleared.")
		} else {
			fmt.Printf("History of %s cleared.\n", scriptID)
		}

	case flagHistoryInteractive:
		rt := runtimeConfig(0)
		if err := tui.RunHistory(store, historyEntries(catalog, scriptID), rt.ScreenW, rt.ScreenH); err != nil {
			fail("%v", err)
		}

	case scriptID != "":
		printScriptHistory(store, catalog, scriptID)

	default:
		printSummary(store, catalog)
	}
}

// historyEntries lists the catalog scripts, the selected one first.
func historyEntries(catalog *script.Catalog, first string) []tui.HistoryEntry {
	var entries []tui.HistoryEntry
	for _, s := range catalog.List() {
		e := tui.HistoryEntry{ID: s.ID, Title: s.Name()}
		if s.ID == first {
			entries = append([]tui.HistoryEntry{e}, entries...)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func printScriptHistory(store *storage.Store, catalog *script.Catalog, scriptID string) {
	title := scriptID
	if s, ok := catalog.Lookup(scriptID); ok {
		title = s.Name()
	}

	reads, err := store.RecentReads(scriptID, flagHistoryLimit)
	if err != nil {
		fail("retrieving history: %v", err)
	}

	fmt.Printf("Reading History - %s\n", title)
	fmt.Println()

	if len(reads) == 0 {
		fmt.Println("No reads recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'hopper play %s' to record the first one!\n", scriptID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-4s  %s\n", "#", "Time", "Chars", "Skip", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-4s  %s\n", "-", "----", "-----", "----", "----")

	// Print reads
	for i, r := range reads {
		skipped := ""
		if r.Skipped {
			skipped = "yes"
		}
		fmt.Printf("  %-4d  %-8s  %-6d  %-4s  %s\n",
			i+1, formatElapsed(r.Elapsed.Seconds()), r.Chars, skipped, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show totals
	fmt.Println()
	if stats, err := store.Stats(scriptID); err == nil && stats.Reads > 0 {
		fmt.Printf("Reads: %d  Average: %s", stats.Reads, formatElapsed(stats.AvgElapsed.Seconds()))
		if stats.BestElapsed > 0 {
			fmt.Printf("  Best: %s", formatElapsed(stats.BestElapsed.Seconds()))
		}
		fmt.Println()
	}
}

func printSummary(store *storage.Store, catalog *script.Catalog) {
	all, err := store.AllStats()
	if err != nil {
		fail("retrieving history: %v", err)
	}

	fmt.Println("Reading History")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No reads recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-7s  %s\n", "Script", "Reads", "Average", "Best", "Last read")
	fmt.Printf("  %-16s  %-5s  %-7s  %-7s  %s\n", "------", "-----", "-------", "----", "---------")

	for _, s := range catalog.List() {
		st, ok := all[s.ID]
		if !ok {
			continue
		}
		printSummaryRow(s.ID, st)
		delete(all, s.ID)
	}
	// Reads of scripts that are no longer in the catalog
	for _, id := range slices.Sorted(maps.Keys(all)) {
		printSummaryRow(id, all[id])
	}
}

func printSummaryRow(id string, st *storage.ReadStats) {
	best := "-"
	if st.BestElapsed > 0 {
		best = formatElapsed(st.BestElapsed.Seconds())
	}
	fmt.Printf("  %-16s  %-5d  %-7s  %-7s  %s\n",
		id, st.Reads, formatElapsed(st.AvgElapsed.Seconds()), best, st.LastRead.Format("2006-01-02 15:04"))
}

func formatElapsed(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
