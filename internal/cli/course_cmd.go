package cli

import (
	"fmt"

	"github.com/alexanderramin/coursepilot/internal/cli/formatter"
	"github.com/alexanderramin/coursepilot/internal/service"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Import and inspect courses",
	}

	cmd.AddCommand(
		newCourseImportCmd(app),
		newCourseListCmd(app),
		newCourseShowCmd(app),
		newCourseStructureCmd(app),
		newCourseDeleteCmd(app),
	)
	return cmd
}

func newCourseImportCmd(app *App) *cobra.Command {
	var opts service.ImportOptions

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a course from a .txt, .json, .yaml or .csv video list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Courses.Import(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.ModuleCount > 0 {
				fmt.Fprintf(out, "Imported %s [%s]: %d videos in %d modules\n",
					formatter.Bold(res.Course.Name), formatter.ShortID(res.Course.ID), res.VideoCount, res.ModuleCount)
			} else {
				fmt.Fprintf(out, "Imported %s [%s]: %d videos (not structured)\n",
					formatter.Bold(res.Course.Name), formatter.ShortID(res.Course.ID), res.VideoCount)
			}
			fmt.Fprintln(out, formatter.Dim("Next: coursepilot plan new "+formatter.ShortID(res.Course.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Course name (defaults to the name in the file or the file name)")
	cmd.Flags().BoolVar(&opts.SkipStructure, "no-structure", false, "Store the videos without inferring modules")
	return cmd
}

func newCourseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := app.Courses.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No courses found. Import one with: coursepilot course import FILE")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourseList(courses))
			return nil
		},
	}
}

func newCourseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a course and its module structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			course, err := app.Courses.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseDetail(course))
			return nil
		},
	}
}

func newCourseStructureCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "structure ID",
		Short: "Infer (or re-infer) the module structure of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			course, err := app.Courses.Structure(ctx, id)
			if err != nil {
				return err
			}
			md := course.Structure.Metadata
			fmt.Fprintf(cmd.OutOrStdout(), "Structured %s: %d modules (%s, %s)\n",
				formatter.Bold(course.Name), len(course.Structure.Modules), md.ProcessingStrategyUsed, md.ContentTypeDetected)
			return nil
		},
	}
}

func newCourseDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a course and all of its plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Courses.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted course %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
