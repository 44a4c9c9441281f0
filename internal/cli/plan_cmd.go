package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexanderramin/coursepilot/internal/cli/formatter"
	"github.com/alexanderramin/coursepilot/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and follow study plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanBrowseCmd(app),
		newPlanDoneCmd(app),
		newPlanAnalyzeCmd(app),
		newPlanRecommendCmd(app),
		newPlanExportCmd(app),
		newPlanRegenerateCmd(app),
		newPlanDeleteCmd(app),
	)
	return cmd
}

func newPlanNewCmd(app *App) *cobra.Command {
	var flags settingsFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "new COURSE_ID",
		Short: "Generate a study plan for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}

			today := startOfDay(app.now())
			settings, err := flags.apply(cmd.Flags(), app.config().PlanSettings(today), today)
			if err != nil {
				return err
			}
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				values := newPlanFormValues(settings)
				if err := newPlanSettingsForm(values).Run(); err != nil {
					return err
				}
				if settings, err = values.settings(settings, today); err != nil {
					return err
				}
			}

			plan, err := app.Plans.Generate(ctx, courseID, settings)
			if err != nil {
				return err
			}
			course, err := app.Courses.GetByID(ctx, courseID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(course, plan, app.now()))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose settings in a form")
	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list COURSE_ID",
		Short: "List the plans of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plans, err := app.Plans.List(ctx, courseID)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plans yet. Create one with: coursepilot plan new "+formatter.ShortID(courseID))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanList(plans))
			return nil
		},
	}
}

// loadPlan resolves input and returns the plan with its course.
func loadPlan(cmd *cobra.Command, app *App, input string) (*domain.Plan, *domain.Course, error) {
	ctx := cmd.Context()
	id, err := resolvePlanID(ctx, app, input)
	if err != nil {
		return nil, nil, err
	}
	plan, err := app.Plans.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	course, err := app.Courses.GetByID(ctx, plan.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return plan, course, nil
}

// parseItemNumber converts a 1-based item number into a plan index.
func parseItemNumber(plan *domain.Plan, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(plan.Items) {
		return 0, fmt.Errorf("invalid item number %q: plan has items 1-%d", s, len(plan.Items))
	}
	return n - 1, nil
}

func newPlanShowCmd(app *App) *cobra.Command {
	var item string

	cmd := &cobra.Command{
		Use:   "show PLAN_ID",
		Short: "Show a plan and its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, course, err := loadPlan(cmd, app, args[0])
			if err != nil {
				return err
			}
			if item != "" {
				idx, err := parseItemNumber(plan, item)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemDetail(course, plan, idx))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(course, plan, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Show the videos of one session (1-based)")
	return cmd
}

func newPlanBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse PLAN_ID",
		Short: "Browse a plan and tick off sessions interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs a terminal; use plan show instead")
			}
			plan, course, err := loadPlan(cmd, app, args[0])
			if err != nil {
				return err
			}
			model := newPlanBrowser(cmd.Context(), app.Plans, course, plan)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

func newPlanDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done PLAN_ID ITEM...",
		Short: "Mark sessions completed (item numbers start at 1)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := loadPlan(cmd, app, args[0])
			if err != nil {
				return err
			}

			indices := make([]int, 0, len(args)-1)
			for _, a := range args[1:] {
				idx, err := parseItemNumber(plan, a)
				if err != nil {
					return err
				}
				indices = append(indices, idx)
			}
			for _, idx := range indices {
				if plan, err = app.Plans.SetCompleted(cmd.Context(), plan.ID, idx, !undo); err != nil {
					return err
				}
			}

			verb := "Completed"
			if undo {
				verb = "Reopened"
			}
			done, total, pct := plan.Progress()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d session(s). %s %d/%d\n",
				verb, len(indices), formatter.RenderProgress(pct/100, 20), done, total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the sessions not completed")
	return cmd
}

func newPlanAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze PLAN_ID",
		Short: "Score a plan's pacing, load and consistency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			analysis, err := app.Plans.Analyze(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAnalysis(analysis))
			return nil
		},
	}
}

func newPlanRecommendCmd(app *App) *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "recommend COURSE_ID",
		Short: "Suggest session frequency, length and strategy for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			today := startOfDay(app.now())
			settings, err := flags.apply(cmd.Flags(), app.config().PlanSettings(today), today)
			if err != nil {
				return err
			}
			rec, err := app.Plans.Recommend(ctx, courseID, settings)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecommendations(rec))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newPlanExportCmd(app *App) *cobra.Command {
	var format formatFlag
	var output string

	cmd := &cobra.Command{
		Use:   "export PLAN_ID",
		Short: "Export a plan as CSV, Markdown, HTML or iCalendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				if err := format.Set(app.config().Export.Format); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() {
					if cerr := f.Close(); err == nil && cerr != nil {
						err = cerr
					}
				}()
				w = f
			}

			if err := app.Plans.Export(ctx, id, format.value, w); err != nil {
				return err
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s export to %s\n", format.value, output)
			}
			return nil
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "Export format: csv, markdown, html or ics (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newPlanRegenerateCmd(app *App) *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "regenerate PLAN_ID",
		Short: "Rebuild a plan with changed settings, keeping completed sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(ctx, id)
			if err != nil {
				return err
			}
			settings, err := flags.apply(cmd.Flags(), plan.Settings, startOfDay(app.now()))
			if err != nil {
				return err
			}
			res, err := app.Plans.Regenerate(ctx, id, settings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Regenerated plan %s with %s: %d sessions, %d completed kept",
				formatter.ShortID(id), res.Plan.Strategy.Label(), len(res.Plan.Items), res.PreservedCompleted)
			if res.DroppedCompleted > 0 {
				fmt.Fprint(out, formatter.StyleYellow.Render(fmt.Sprintf(", %d no longer match", res.DroppedCompleted)))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PLAN_ID",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
