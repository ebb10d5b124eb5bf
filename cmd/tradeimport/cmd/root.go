package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "tradeimport",
	Short: "Broker trade-history importer",
	Long: renderBanner() + `

Detects a broker's CSV export format, parses it into canonical trades,
and prints the parse result and performance statistics as JSON.

Get started:
  tradeimport parse statement.csv`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tradeimport/config.yaml)")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig wires an optional per-user viper config file, mirroring the
// layered load the config package itself does for process-level settings.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		configDir := filepath.Join(home, ".tradeimport")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetDefault("bucket_duration", "1m")
	_ = viper.ReadInConfig()
}

func renderBanner() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("13")).
		Bold(true)

	banner := `
 _                 _      _                           _
| |_ _ __ __ _  __| | ___(_)_ __ ___  _ __   ___  _ __| |_
| __| '__/ _` + "`" + ` |/ _` + "`" + ` |/ _ \ | '_ ` + "`" + ` _ \| '_ \ / _ \| '__| __|
| |_| | | (_| | (_| |  __/ | | | | | | |_) | (_) | |  | |_
 \__|_|  \__,_|\__,_|\___|_|_| |_| |_| .__/ \___/|_|   \__|
                                     |_|`

	return style.Render(banner)
}
