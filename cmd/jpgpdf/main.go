// Package main is the jpgpdf command line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "jpgpdf",
	Short: "Combine a directory of JPEG images into one PDF",
	Long: `jpgpdf collects the .jpg files in a directory, sorts them by name, and
writes them into a single PDF with one image per page.

Settings can be given as flags, as JPGPDF_* environment variables, or in a
jpgpdf.yaml config file.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jpgpdf.yaml or ~/.config/jpgpdf/jpgpdf.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug information")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jpgpdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jpgpdf"))
		}
	}

	viper.SetEnvPrefix("JPGPDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
