package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/config"
)

var (
	configFile string
	cfg        *config.Config

	// Build information, injected at link time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func printVersionInfo() {
	fmt.Printf("fieldline v%s (build %s)\n", Version, GitCommit)
	fmt.Printf("Built: %s\n", BuildTime)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

var rootCmd = &cobra.Command{
	Use:   "fieldline",
	Short: "Schema-adaptive field resolution for governance warehouses",
	Long: "fieldline discovers a tenant's physical warehouse schema, reconciles the canonical " +
		"field catalog against it, and generates coverage and pivot queries that adapt to " +
		"whatever column names the tenant actually has.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("version") != nil && cmd.Flags().Lookup("version").Changed {
			printVersionInfo()
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath(), "Path to config file")
	rootCmd.Flags().Bool("version", false, "Show version information and exit")

	cobra.OnInitialize(func() {
		loaded, err := config.Init(configFile)
		if err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	})

	setupCommands()
}

// setupCommands initializes all commands and their relationships.
func setupCommands() {
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(pivotCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(tenantConfigCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	Execute()
}
