package cli

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand applies the schema and exits. Connect already migrates,
// so this is just bootstrap without serving.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap("")
			if err != nil {
				return err
			}
			defer a.close()
			a.logger.Info("schema migrated")
			return nil
		},
	}
}
