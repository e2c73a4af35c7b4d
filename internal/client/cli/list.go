package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/repositories/entries"
	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var (
		from      string
		to        string
		tag       string
		sentiment string
		favorites bool
		search    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List diary entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := entries.Filter{
				Tag:           tag,
				Sentiment:     diary.Sentiment(sentiment),
				FavoritesOnly: favorites,
				Search:        search,
			}
			var err error
			if f.From, err = parseDateFlag(from, "from"); err != nil {
				return err
			}
			if f.To, err = parseDateFlag(to, "to"); err != nil {
				return err
			}

			list, err := a.svc.ListEntries(cmd.Context(), f)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No entries.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tID\tTITLE\tSENTIMENT\tTAGS\tFLAGS")
			for _, e := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.EntryDate.Format("2006-01-02"),
					shortID(e.ID),
					e.Title,
					e.Sentiment,
					strings.Join(e.Tags, ","),
					entryFlags(e),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "earliest entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tag, "tag", "", "only entries carrying this tag")
	cmd.Flags().StringVar(&sentiment, "sentiment", "", "only entries with this sentiment")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorite entries")
	cmd.Flags().StringVarP(&search, "search", "q", "", "substring match over title and content")

	return cmd
}

func parseDateFlag(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &common.ValidationError{Field: field}
	}
	return t, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func entryFlags(e *diary.Entry) string {
	var flags []string
	if e.IsFavorite {
		flags = append(flags, "fav")
	}
	if e.IsEncrypted {
		flags = append(flags, "sealed")
	}
	if e.SyncStatus == diary.SyncStatusPending {
		flags = append(flags, "pending")
	}
	return strings.Join(flags, ",")
}
