package commands

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/datets/internal/config"
)

// ConfigFlag is the persistent flag holding an explicit config file path.
const ConfigFlag = "config"

// loadConfig loads the configuration named by the --config flag, searching
// the default locations when the flag is unset or not registered.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := ""
	if f := cmd.Flag(ConfigFlag); f != nil {
		path = f.Value.String()
	}

	return config.Load(path)
}
