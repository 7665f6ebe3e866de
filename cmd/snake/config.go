package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would use, as YAML.

The configuration is searched in this order:
  --config <path>
  ~/.snake/configs/snake.yaml
  ./configs/snake.yaml
  built-in defaults

Examples:
  snake config
  snake config --defaults > ~/.snake/configs/snake.yaml
  snake config --config ./my-snake.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default file with comments")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	cfg, src, err := config.LoadSnakeWithSource(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("# source: %s\n", src)
	os.Stdout.Write(data)
}
