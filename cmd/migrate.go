package cmd

import (
	"fmt"

	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		db, err := openDatabase(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		logger.LogSystem("Schema migration completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
