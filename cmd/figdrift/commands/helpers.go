// Package commands implements the figdrift CLI commands. Every command
// builds its client through CreateClient so flag, environment and config
// file precedence stays uniform.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/figdrift/figdrift/pkg/figma"
	"github.com/figdrift/figdrift/pkg/figmaclient"
)

// Output format values for the --output flag.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// CreateClient builds a figma.Client from the effective configuration:
// flags take precedence over FIGMA_* environment variables, which take
// precedence over the config file.
func CreateClient() (figma.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("no access token configured: pass --token, set FIGMA_TOKEN or run 'figdrift token set'")
	}

	config := &figma.Config{
		AccessToken:         token,
		BaseURL:             viper.GetString("base-url"),
		EnableCache:         !viper.GetBool("no-cache"),
		DeduplicateRequests: true,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	client, err := figmaclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("figdrift %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// output renders v in the format selected by --output, falling back to
// the table renderer.
func output(v interface{}, table func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(v)
	case OutputFormatYAML:
		return outputYAML(v)
	default:
		return table()
	}
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}

// stderrLogger adapts verbose mode onto the client's logger interface.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
