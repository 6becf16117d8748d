package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse teams and projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsFilesCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list TEAM_ID",
		Short: "List the projects of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			projects, err := client.Teams().GetProjects(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output(projects.Projects, func() error {
				if len(projects.Projects) == 0 {
					cmd.Println("No projects found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name")

				for _, project := range projects.Projects {
					_ = table.Append(project.ID, project.Name)
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newProjectsFilesCommand() *cobra.Command {
	var branchData bool

	cmd := &cobra.Command{
		Use:   "files PROJECT_ID",
		Short: "List the files of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			files, err := client.Projects().GetFiles(cmd.Context(), args[0], branchData)
			if err != nil {
				return err
			}

			return output(files.Files, func() error {
				if len(files.Files) == 0 {
					cmd.Println("No files found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Name", "Last Modified")

				for _, file := range files.Files {
					_ = table.Append(file.Key, file.Name,
						file.LastModified.Format("2006-01-02 15:04:05"))
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&branchData, "branch-data", false, "include branch metadata")

	return cmd
}

// NewMeCommand creates the me command.
func NewMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Me(cmd.Context())
			if err != nil {
				return err
			}

			return output(user, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", user.ID)
				_ = table.Append("Handle", user.Handle)
				_ = table.Append("Email", user.Email)

				_ = table.Render()

				return nil
			})
		},
	}
}
