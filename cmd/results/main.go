package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/milk9111/vrlocomotion/results"
)

func main() {
	dbPath := flag.String("db", "results.db", "results database path")
	limit := flag.Int("n", 20, "number of sessions to list (0 for all)")
	best := flag.Bool("best", false, "print the best score per movement mode")
	flag.Parse()

	store, err := results.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if *best {
		scores, err := store.Best(ctx)
		if err != nil {
			log.Fatal(err)
		}
		modes := make([]string, 0, len(scores))
		for mode := range scores {
			modes = append(modes, mode)
		}
		sort.Strings(modes)
		fmt.Fprintln(tw, "MODE\tBEST")
		for _, mode := range modes {
			fmt.Fprintf(tw, "%s\t%d\n", mode, scores[mode])
		}
		return
	}

	list, err := store.List(ctx, *limit)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(tw, "ID\tRECORDED\tMODE\tSCORE\tDURATION\tSEED")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.0fs\t%d\n", r.ID, r.RecordedAt.Local().Format(time.DateTime), r.Mode, r.Score, r.Duration, r.Seed)
	}
}
