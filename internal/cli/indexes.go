package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront/internal/database"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the collection indexes and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		if err := database.EnsureIndexes(cmd.Context(), e.db); err != nil {
			return err
		}
		for _, spec := range database.Indexes() {
			logrus.WithField("collection", spec.Collection).Info("index ensured")
		}
		return nil
	},
}
