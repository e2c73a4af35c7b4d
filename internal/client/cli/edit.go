package cli

import (
	"fmt"

	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/service"
	"github.com/spf13/cobra"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title     string
		content   string
		date      string
		tagNames  []string
		sentiment string
		weather   string
		location  string
		favorite  bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureUnlocked(); err != nil {
				return err
			}

			id, err := a.resolveID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// only flags the user actually set become part of the patch
			var patch service.UpdatePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("date") {
				patch.EntryDate = &date
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tagNames
			}
			if cmd.Flags().Changed("sentiment") {
				s := diary.Sentiment(sentiment)
				patch.Sentiment = &s
			}
			if cmd.Flags().Changed("weather") {
				patch.Weather = &weather
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &location
			}
			if cmd.Flags().Changed("favorite") {
				patch.IsFavorite = &favorite
			}

			if cmd.Flags().Changed("content") {
				e, err := a.svc.GetEntry(cmd.Context(), id)
				if err != nil {
					return err
				}
				if e.IsEncrypted {
					if err := a.ensureSealKey(); err != nil {
						return err
					}
				}
			}

			updated, err := a.svc.UpdateEntry(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated entry %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "new content")
	cmd.Flags().StringVar(&date, "date", "", "new entry date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&tagNames, "tags", nil, "replace the tag list")
	cmd.Flags().StringVar(&sentiment, "sentiment", "", "new sentiment label")
	cmd.Flags().StringVar(&weather, "weather", "", "new weather note")
	cmd.Flags().StringVar(&location, "location", "", "new location note")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "set or clear the favorite flag")

	return cmd
}
