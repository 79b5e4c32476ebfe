package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"

	"storefront/catalog"
	"storefront/config"
	"storefront/database"
	"storefront/server"
)

var (
	configPath    string
	forceInit     bool
	migrationName string
	migrationDir  string
	searchTab     string
	searchCat     string
)

var rootCmd = &cobra.Command{
	Use:          "storefront",
	Short:        "Britannia storefront API",
	SilenceUsage: true,
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		server.StartServer(cfg)
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default configuration to --config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

// inspectCmd dumps what is persisted for one visitor
var inspectCmd = &cobra.Command{
	Use:   "inspect <visitor-id>",
	Short: "Print a visitor's stored cart and session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(logger.LoggerConfig{
			CallerKey:  "file",
			TimeKey:    "timestamp",
			CallerSkip: 1,
		})
		dbConn := database.InitializeDatabase(cfg.Database)
		defer dbConn.Close()

		entries, err := database.NewStorageRepo(dbConn).Entries(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := make(map[string]json.RawMessage, len(entries))
		for _, e := range entries {
			if json.Valid(e.Value) {
				out[e.StorageKey] = e.Value
				continue
			}
			quoted, _ := json.Marshal(string(e.Value))
			out[e.StorageKey] = quoted
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var createMigrationCmd = &cobra.Command{
	Use:   "create-migration",
	Short: "Create an empty timestamped .sql migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrationName == "" {
			return fmt.Errorf("--name is required")
		}
		migrations.CreateMigration(&migrationName, &migrationDir)
		return nil
	},
}

// searchCmd runs the quick search, or a category filter when --category is set
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog and print matches as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := catalog.Default()
		query := strings.TrimSpace(args[0])

		var out interface{}
		if searchCat != "" {
			out = map[string]interface{}{
				"products": catalog.FilterProducts(c.Products(), query, searchCat),
				"recipes":  catalog.FilterRecipes(c.Recipes(), query, searchCat),
			}
		} else {
			switch searchTab {
			case catalog.TabAll, catalog.TabProducts, catalog.TabRecipes:
			default:
				return fmt.Errorf("--tab must be all, products or recipes")
			}
			out = c.QuickSearch(query, searchTab)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "storefront.yaml", "Path to the YAML config file")
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")

	createMigrationCmd.Flags().StringVar(&migrationName, "name", "", "Migration name (alphanum+underscore only)")
	createMigrationCmd.Flags().StringVar(&migrationDir, "dir", "./database/migrations", "Target directory for the new .sql file")

	searchCmd.Flags().StringVar(&searchTab, "tab", catalog.TabAll, "Result kind: all, products or recipes")
	searchCmd.Flags().StringVar(&searchCat, "category", "", "Filter by category instead of quick search")

	rootCmd.AddCommand(startCmd, initConfigCmd, inspectCmd, createMigrationCmd, searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
