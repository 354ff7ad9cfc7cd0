package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atomizer/internal/domain"
)

func newReformatCommand(a *app) *cobra.Command {
	var (
		contentID string
		clipID    string
		aspect    string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "reformat",
		Short: "Re-render a ready clip at another aspect ratio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			q, err := a.openQueue(a.cfg.RabbitMQ.ReformatQueue)
			if err != nil {
				return err
			}
			defer q.Close()

			submitter, closePlans := a.submitter(ctx, db, q)
			defer closePlans()

			res, err := submitter.RequestReformat(ctx, contentID, clipID, domain.AspectRatio(aspect), force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.ExistingURL != "" {
				fmt.Fprintf(out, "Already rendered: %s\n", res.ExistingURL)
				return nil
			}
			fmt.Fprintf(out, "Queued reformat job %s\n", res.Job.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&contentID, "content", "", "content id")
	cmd.Flags().StringVar(&clipID, "clip", "", "clip id")
	cmd.Flags().StringVar(&aspect, "aspect", string(domain.AspectVertical), "target aspect ratio: 9:16, 1:1 or 4:5")
	cmd.Flags().BoolVar(&force, "force", false, "render again even if a rendering exists")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("clip")
	return cmd
}
