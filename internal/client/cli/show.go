package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/repositories/entries"
	"github.com/spf13/cobra"
)

func (a *App) showCmd() *cobra.Command {
	var decrypt bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			e, err := a.svc.GetEntry(cmd.Context(), id)
			if err != nil {
				return err
			}

			a.printEntry(e)

			if e.IsEncrypted && decrypt {
				if err := a.ensureSealKey(); err != nil {
					return err
				}
				content, err := a.svc.GetEntryContent(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "\n%s\n", content)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "decrypt and print sealed content")
	return cmd
}

func (a *App) printEntry(e *diary.Entry) {
	fmt.Fprintf(a.out, "ID:        %s\n", e.ID)
	fmt.Fprintf(a.out, "Title:     %s\n", e.Title)
	fmt.Fprintf(a.out, "Date:      %s (%s)\n", e.EntryDate.Format("2006-01-02"), e.DayOfWeek)
	fmt.Fprintf(a.out, "Sentiment: %s (%.2f)\n", e.Sentiment, e.SentimentScore)
	if len(e.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags:      %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Weather != "" {
		fmt.Fprintf(a.out, "Weather:   %s\n", e.Weather)
	}
	if e.Location != "" {
		fmt.Fprintf(a.out, "Location:  %s\n", e.Location)
	}
	fmt.Fprintf(a.out, "Words:     %d (%d min read)\n", e.WordCount, e.ReadTime)

	if e.IsEncrypted {
		fmt.Fprintln(a.out, "\n[sealed entry; use --decrypt to read it]")
	} else {
		fmt.Fprintf(a.out, "\n%s\n", e.Content)
	}
}

// resolveID accepts a full entry id or an unambiguous prefix, so the short
// ids printed by list are usable directly.
func (a *App) resolveID(ctx context.Context, arg string) (string, error) {
	if _, err := a.svc.GetEntry(ctx, arg); err == nil {
		return arg, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return "", err
	}

	list, err := a.svc.ListEntries(ctx, entries.Filter{})
	if err != nil {
		return "", err
	}

	var match string
	for _, e := range list {
		if strings.HasPrefix(e.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", arg)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", common.ErrNotFound
	}
	return match, nil
}
