/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"voteapp/domain/config"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voteapp",
	Short: "Treasury and governance ledger",
	Long: `Runs a self-custodial treasury that sells a program-issued asset at a fixed
price, next to a registry of voters and time-bounded proposals.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config.yaml"
	}
	config.ReadConfig(cfgFile)
}
