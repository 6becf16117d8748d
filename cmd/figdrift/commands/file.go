package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/figdrift/figdrift/pkg/figma"
)

// NewFileCommand creates the file command group.
func NewFileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Inspect design files",
		Long:  "Inspect design file metadata, version history and image fills",
	}

	cmd.AddCommand(newFileMetaCommand())
	cmd.AddCommand(newFileVersionsCommand())
	cmd.AddCommand(newFileImagesCommand())

	return cmd
}

func newFileMetaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "meta FILE_KEY",
		Short: "Show file metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			meta, err := client.Files().GetMeta(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output(meta, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Name", meta.Name)
				_ = table.Append("Folder", meta.FolderName)
				_ = table.Append("Editor", meta.EditorType)
				_ = table.Append("Version", meta.Version)
				_ = table.Append("Last touched", meta.LastTouchedAt.Format("2006-01-02 15:04:05"))
				_ = table.Append("URL", figma.FileURL(args[0], ""))

				_ = table.Render()

				return nil
			})
		},
	}
}

func newFileVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions FILE_KEY",
		Short: "Show file version history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			versions, err := client.Files().GetVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output(versions.Versions, func() error {
				if len(versions.Versions) == 0 {
					cmd.Println("No versions found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Label", "User", "Created")

				for _, version := range versions.Versions {
					_ = table.Append(version.ID, version.Label, version.User.Handle,
						version.CreatedAt.Format("2006-01-02 15:04:05"))
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newFileImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "images FILE_KEY",
		Short: "Show image fill download URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			fills, err := client.Files().GetImageFills(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output(fills.Images, func() error {
				if len(fills.Images) == 0 {
					cmd.Println("No image fills found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Ref", "URL")

				for ref, imageURL := range fills.Images {
					_ = table.Append(ref, imageURL)
				}

				_ = table.Render()

				return nil
			})
		},
	}
}
