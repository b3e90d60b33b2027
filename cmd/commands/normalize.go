package commands

import (
	"fmt"

	"github.com/motoshop/motoshop/internal/app"
	"github.com/spf13/cobra"
)

var normalizePhotosCmd = &cobra.Command{
	Use:   "normalize-photos",
	Short: "Crop and resize every stored profile photo to 300x300",
	Long: `Re-run photo normalization for every user that has a photo.

Use it to repair photos whose normalization failed after the user was saved.
Normalizing an already square 300x300 photo leaves it at 300x300.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		application, err := app.NewCore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		done, err := application.UserService.NormalizeAllPhotos(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Normalized %d photo(s)\n", done)
		return err
	},
}

func init() {
	rootCmd.AddCommand(normalizePhotosCmd)
}
