package commands

import (
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/figdrift/figdrift/pkg/figma"
)

// NewComponentsCommand creates the components command.
func NewComponentsCommand() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "components [FILE_KEY]",
		Short: "List published components",
		Long:  "List components published from a file, or across a team's libraries with --team",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var components *figma.ComponentsResponse

			switch {
			case teamID != "":
				components, err = client.Components().ListForTeam(cmd.Context(), teamID, nil)
			case len(args) == 1:
				components, err = client.Components().ListForFile(cmd.Context(), args[0])
			default:
				return cmd.Usage()
			}

			if err != nil {
				return err
			}

			return output(components.Components, func() error {
				if len(components.Components) == 0 {
					cmd.Println("No components found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Name", "File", "Node", "Updated")

				for _, component := range components.Components {
					_ = table.Append(component.Key, component.Name, component.FileKey,
						component.NodeID, component.UpdatedAt.Format("2006-01-02"))
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "list across a team's libraries")

	return cmd
}

// NewStylesCommand creates the styles command.
func NewStylesCommand() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "styles [FILE_KEY]",
		Short: "List published styles",
		Long:  "List styles published from a file, or across a team's libraries with --team",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var styles *figma.StylesResponse

			switch {
			case teamID != "":
				styles, err = client.Styles().ListForTeam(cmd.Context(), teamID, nil)
			case len(args) == 1:
				styles, err = client.Styles().ListForFile(cmd.Context(), args[0])
			default:
				return cmd.Usage()
			}

			if err != nil {
				return err
			}

			return output(styles.Styles, func() error {
				if len(styles.Styles) == 0 {
					cmd.Println("No styles found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Name", "Type", "File", "Updated")

				for _, style := range styles.Styles {
					_ = table.Append(style.Key, style.Name, style.StyleType,
						style.FileKey, style.UpdatedAt.Format("2006-01-02"))
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "list across a team's libraries")

	return cmd
}

// NewVariablesCommand creates the variables command.
func NewVariablesCommand() *cobra.Command {
	var published bool

	cmd := &cobra.Command{
		Use:   "variables FILE_KEY",
		Short: "List design variables",
		Long:  "List the design variables (tokens) of a file; requires an Enterprise plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var variables *figma.VariablesResponse

			if published {
				variables, err = client.Variables().GetPublished(cmd.Context(), args[0])
			} else {
				variables, err = client.Variables().GetLocal(cmd.Context(), args[0])
			}

			if err != nil {
				return err
			}

			return output(variables, func() error {
				if len(variables.Variables) == 0 {
					cmd.Println("No variables found")

					return nil
				}

				ids := make([]string, 0, len(variables.Variables))
				for id := range variables.Variables {
					ids = append(ids, id)
				}

				sort.Strings(ids)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Type", "Collection", "Description")

				for _, id := range ids {
					variable := variables.Variables[id]
					collection := variable.VariableCollectionID

					if c, ok := variables.Collections[collection]; ok {
						collection = c.Name
					}

					_ = table.Append(variable.Name, variable.ResolvedType, collection, variable.Description)
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&published, "published", false, "list only published variables")

	return cmd
}
