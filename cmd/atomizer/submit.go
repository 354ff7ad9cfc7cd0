package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atomizer/internal/domain"
	"atomizer/internal/service"
)

func newSubmitCommand(a *app) *cobra.Command {
	var (
		sub      struct{ url, file, user string }
		opts     domain.Options
		style    string
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Queue a video for processing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (sub.url == "") == (sub.file == "") {
				return fmt.Errorf("exactly one of --url or --file is required")
			}
			opts.CaptionStyle = domain.CaptionStyle(style)
			switch opts.CaptionStyle {
			case domain.CaptionDefault, domain.CaptionHighlight, domain.CaptionKaraoke:
			default:
				return fmt.Errorf("unknown caption style %q", style)
			}
			if from != "" || to != "" {
				opts.Timeframe = &domain.Timeframe{Start: from, End: to}
			}

			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			q, err := a.openQueue(a.cfg.RabbitMQ.TextQueue)
			if err != nil {
				return err
			}
			defer q.Close()

			submitter, closePlans := a.submitter(ctx, db, q)
			defer closePlans()

			id, err := submitter.Submit(ctx, service.Submission{
				UserID:    sub.user,
				URL:       sub.url,
				LocalPath: sub.file,
				Options:   opts,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub.url, "url", "", "remote video link")
	cmd.Flags().StringVar(&sub.file, "file", "", "path to an uploaded video")
	cmd.Flags().StringVar(&sub.user, "user", "", "owning user id")
	cmd.Flags().IntVar(&opts.ClipLength, "clip-length", 0, "preferred clip length in seconds")
	cmd.Flags().IntVar(&opts.ClipLimit, "clip-limit", 0, "maximum clips (defaults to the plan allowance)")
	cmd.Flags().BoolVar(&opts.EnableCaptions, "captions", false, "burn captions into clips")
	cmd.Flags().StringVar(&style, "caption-style", string(domain.CaptionDefault), "caption style: default, highlight or karaoke")
	cmd.Flags().StringVar(&from, "from", "", "start of the range to analyse (HH:MM:SS)")
	cmd.Flags().StringVar(&to, "to", "", "end of the range to analyse (HH:MM:SS)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
