package cli

import (
	"fmt"
	"time"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/spf13/cobra"
)

func (a *App) addCmd() *cobra.Command {
	var (
		title     string
		content   string
		date      string
		tagNames  []string
		sentiment string
		weather   string
		location  string
		favorite  bool
		encrypt   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a diary entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureUnlocked(); err != nil {
				return err
			}

			if content == "" {
				var err error
				content, err = a.promptMultiline("Write your entry:")
				if err != nil {
					return err
				}
			}

			e := &diary.Entry{
				Title:      title,
				Content:    content,
				Tags:       tagNames,
				Sentiment:  diary.Sentiment(sentiment),
				Weather:    weather,
				Location:   location,
				IsFavorite: favorite,
			}
			if date != "" {
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return &common.ValidationError{Field: "entry_date"}
				}
				e.EntryDate = d
			}

			if encrypt {
				if err := a.ensureSealKey(); err != nil {
					return err
				}
			}

			stored, err := a.svc.CreateEntry(cmd.Context(), e, encrypt)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Created entry %s (%s, %d words)\n",
				stored.ID, stored.Sentiment, stored.WordCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "entry title (required)")
	cmd.Flags().StringVarP(&content, "content", "m", "", "entry text; prompted when omitted")
	cmd.Flags().StringVar(&date, "date", "", "entry date as YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVar(&tagNames, "tags", nil, "comma-separated tag names")
	cmd.Flags().StringVar(&sentiment, "sentiment", "", "override the detected sentiment")
	cmd.Flags().StringVar(&weather, "weather", "", "weather note")
	cmd.Flags().StringVar(&location, "location", "", "location note")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "mark as favorite")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "seal the content with your password")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
