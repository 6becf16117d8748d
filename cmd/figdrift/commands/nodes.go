package commands

import (
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/figdrift/figdrift/pkg/figma"
)

// NewNodesCommand creates the nodes command.
func NewNodesCommand() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "nodes FILE_KEY NODE_ID...",
		Short: "Fetch specific nodes of a file",
		Long:  "Fetch node subtrees by id; large id sets are chunked into multiple requests",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var opts *figma.BatchOptions
			if batchSize > 0 {
				opts = &figma.BatchOptions{BatchSize: batchSize}
			}

			nodes, err := client.Files().GetNodesBatched(cmd.Context(), args[0], args[1:], opts)
			if err != nil {
				return err
			}

			return output(nodes, func() error {
				ids := make([]string, 0, len(nodes))
				for id := range nodes {
					ids = append(ids, id)
				}

				sort.Strings(ids)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type")

				for _, id := range ids {
					result := nodes[id]
					if result == nil || result.Document == nil {
						_ = table.Append(id, "(missing)", "")

						continue
					}

					_ = table.Append(id, result.Document.Name, result.Document.Type)
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "node ids per request (default 100)")

	return cmd
}
