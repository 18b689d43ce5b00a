package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/auth"
	"storefront/internal/database"
	"storefront/internal/services"
)

var promoteSuper bool

var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Grant admin rights to a registered user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		tokens := auth.NewTokens(e.cfg.JWTSecret, e.cfg.AccessTokenTTL)
		svc := services.New(database.NewStore(e.db), tokens, services.Options{})

		user, err := svc.Users.Promote(cmd.Context(), args[0], promoteSuper)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now admin (super=%t)\n", user.Email, user.IsSuperAdmin)
		return nil
	},
}

func init() {
	promoteCmd.Flags().BoolVar(&promoteSuper, "super", false, "also grant super admin")
}
