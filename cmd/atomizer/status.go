package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"atomizer/internal/domain"
	"atomizer/internal/storage/postgres"
	"atomizer/internal/timecode"
)

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <content-id>",
		Short: "Show a content item with its clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			content, err := postgres.NewContentStore(db).Get(ctx, args[0])
			if err != nil {
				return err
			}

			printContent(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func printContent(out io.Writer, c *domain.Content) {
	fmt.Fprintf(out, "ID:      %s\n", c.ID)
	fmt.Fprintf(out, "User:    %s\n", c.UserID)
	fmt.Fprintf(out, "Source:  %s\n", c.SourceURL)
	fmt.Fprintf(out, "Status:  %s\n", c.Status)
	if c.GeneratedTitle != "" {
		fmt.Fprintf(out, "Title:   %s\n", c.GeneratedTitle)
	}
	if c.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:   %s\n", c.ErrorMessage)
	}

	if len(c.Clips) > 0 {
		rows := make([][]string, 0, len(c.Clips))
		for _, clip := range c.Clips {
			rows = append(rows, []string{
				strconv.Itoa(clip.Position + 1),
				clip.ID,
				clip.Title,
				timecode.Format(clip.StartTime) + " - " + timecode.Format(clip.EndTime),
				string(clip.Status),
				clip.S3URL,
			})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"#", "Clip", "Title", "Range", "Status", "URL"}, rows, 0))
	}

	if len(c.ReformattedClips) > 0 {
		rows := make([][]string, 0, len(c.ReformattedClips))
		for _, job := range c.ReformattedClips {
			rows = append(rows, []string{job.ID, job.ClipID, string(job.AspectRatio), string(job.Status), job.URL})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Reformat", "Clip", "Aspect", "Status", "URL"}, rows, -1))
	}
}

// renderTable right-aligns the column at index right; -1 leaves every column
// left-aligned.
func renderTable(headers []string, rows [][]string, right int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	if right >= 0 {
		tw.SetColumnConfigs([]table.ColumnConfig{{
			Number:      right + 1,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		}})
	}
	return tw.Render()
}
