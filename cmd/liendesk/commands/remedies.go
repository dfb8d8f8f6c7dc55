package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
	"liendesk/internal/render"
	deadlinesvc "liendesk/internal/services/deadline"
)

// remediesCmd is the quick remedies lookup: deadlines for a set of inputs
// without creating a project.
func remediesCmd() *cobra.Command {
	var (
		req   domain.DeadlineRequest
		dates []string
	)
	cmd := &cobra.Command{
		Use:   "remedies",
		Short: "Look up lien deadlines without creating a project",
		Example: `  liendesk remedies --state TX --project-type commercial --role sub \
    --customer-type gc --date first_furnishing_date=2024-01-15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			req.FurnishingDates = make(map[string]domain.Date, len(dates))
			for _, kv := range dates {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--date %q: want key=YYYY-MM-DD", kv)
				}
				d, err := domain.ParseDate(v)
				if err != nil {
					return fmt.Errorf("--date %s: %w", k, err)
				}
				req.FurnishingDates[k] = d
			}
			items, err := appCtx.Deadlines.Calculate(cmd.Context(), req)
			if err != nil {
				return err
			}
			buckets := deadlinesvc.Buckets(items)
			return emit(cmd, items, func(w io.Writer) {
				fmt.Fprintln(w, render.Deadlines(items))
				if len(items) == 0 {
					return
				}
				fmt.Fprintf(w, "\n%d overdue, %d due within %d days, %d later\n",
					len(buckets[domain.UrgencyOverdue]),
					len(buckets[domain.UrgencySoon]), domain.SoonThresholdDays,
					len(buckets[domain.UrgencySafe]))
			})
		},
	}
	cmd.Flags().StringVar(&req.State, "state", "", "state or province id")
	cmd.Flags().StringVar(&req.ProjectType, "project-type", "", "project type id")
	cmd.Flags().StringVar(&req.Role, "role", "", "your role id")
	cmd.Flags().StringVar(&req.CustomerType, "customer-type", "", "customer type id")
	cmd.Flags().StringSliceVar(&dates, "date", nil, "furnishing date key=YYYY-MM-DD (repeatable)")
	return cmd
}
