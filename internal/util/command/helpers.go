package command

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/config"
)

// ConfigFlag is the persistent flag naming an optional config file
const ConfigFlag = "config"

// LoadConfig reads the server config, overlaid with the --config file when given
func LoadConfig(cmd *cobra.Command) (config.Server, error) {
	path, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		path = ""
	}

	return config.LoadServiceConfig(path)
}

// ParsePosition parses a non-negative list position argument
func ParsePosition(arg string, name string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 0 {
		return 0, errors.Errorf("%s must be a non-negative integer, got %q", name, arg)
	}
	return pos, nil
}

// PrintJSON writes v indented to the command's output
func PrintJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RunWithServer loads the config of cmd and runs f within WithServer
func RunWithServer(cmd *cobra.Command, f func(ctx context.Context, s *api.Server) error) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	return WithServer(cmd.Context(), cfg, f)
}
