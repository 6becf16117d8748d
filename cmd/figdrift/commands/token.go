package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/figdrift/figdrift/internal/constants"
)

// NewTokenCommand creates the token command group.
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored access token",
	}

	cmd.AddCommand(newTokenSetCommand())
	cmd.AddCommand(newTokenShowCommand())

	return cmd
}

func newTokenSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store an access token in the config file",
		Long:  "Prompt for an access token without echoing it and store it in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Print("Access token: ")

			tokenBytes, err := term.ReadPassword(syscall.Stdin)

			cmd.Println()

			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}

			token := strings.TrimSpace(string(tokenBytes))
			if token == "" {
				return fmt.Errorf("token must not be blank")
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			if err := writeConfigValue(path, "token", token); err != nil {
				return err
			}

			cmd.Printf("Token stored in %s\n", path)

			return nil
		},
	}
}

func newTokenShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective access token, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := viper.GetString("token")
			if token == "" {
				return fmt.Errorf("no access token configured")
			}

			cmd.Println(maskToken(token))

			return nil
		},
	}
}

// maskToken keeps enough of the token to identify it without exposing it.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}

	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".figdrift", "config.yml"), nil
}

// writeConfigValue merges one key into the YAML config file, creating the
// file and its directory with restrictive permissions.
func writeConfigValue(path, key string, value interface{}) error {
	settings := map[string]interface{}{}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
	}

	settings[key] = value

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
