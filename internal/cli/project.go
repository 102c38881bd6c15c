package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentscope-io/agentscope/internal/models"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE:    runProjectList,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [id] [new-name]",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all its runs",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate run counts per project",
	RunE:  runProjectStats,
}

var projectUseCmd = &cobra.Command{
	Use:   "use [id-or-name]",
	Short: "Select the project other commands operate on",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUse,
}

var projectDescription string

func init() {
	projectCreateCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "project description")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectStatsCmd)
	projectCmd.AddCommand(projectUseCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	list, err := d.client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No projects. Run 'agentscope project create <name>' to create one.")
		return nil
	}

	selectedID := d.projects.StoredID()
	for _, p := range list {
		marker := "  "
		if p.ID == selectedID {
			marker = styleSuccess.Render("* ")
		}
		line := fmt.Sprintf("%s%s  %s", marker, styleValue.Render(p.Name), styleLabel.Render(p.ID))
		if desc := deref(p.Description); desc != "" {
			line += "  " + styleHint.Render(desc)
		}
		fmt.Println(fit(line, terminalWidth()))
	}
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	req := models.CreateProjectRequest{Name: args[0]}
	if projectDescription != "" {
		req.Description = &projectDescription
	}

	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.client.CreateProject(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Println(styleSuccess.Render("Created project " + p.Name))
	fmt.Println(styleLabel.Render("ID: ") + p.ID)
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	name := args[1]
	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.client.UpdateProject(ctx, args[0], models.UpdateProjectRequest{Name: &name})
	if err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}

	fmt.Println(styleSuccess.Render("Renamed project to " + p.Name))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := d.client.DeleteProject(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	// Drop a stale selection so the next scoped command reselects.
	if d.projects.StoredID() == args[0] {
		if err := d.projects.ClearStored(); err != nil {
			return err
		}
	}

	fmt.Println("Project deleted.")
	return nil
}

func runProjectStats(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	list, err := d.client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No projects.")
		return nil
	}

	// One stats request per project, fetched concurrently.
	stats := make([]*models.ProjectStats, len(list))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range list {
		g.Go(func() error {
			s, err := d.client.ProjectStats(gctx, list[i].ID)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", list[i].Name, err)
			}
			mu.Lock()
			stats[i] = s
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%-28s %10s %10s %10s\n",
		styleLabel.Render("PROJECT"),
		styleLabel.Render("RUNS"),
		styleLabel.Render("FAILED"),
		styleLabel.Render("RECENT"))
	for i, p := range list {
		fmt.Printf("%-28s %10d %10d %10d\n",
			fit(p.Name, 28), stats[i].TotalRuns, stats[i].FailedRuns, stats[i].RecentRuns)
	}
	return nil
}

func runProjectUse(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.resolveProject(ctx, args[0])
	if err != nil {
		return err
	}
	if err := d.projects.Select(p); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Now using project " + p.Name))
	return nil
}
