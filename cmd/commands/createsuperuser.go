package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/motoshop/motoshop/internal/app"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	superuserName  string
	superuserEmail string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create a staff account",
	Long: `Create a staff account that can manage the catalog, orders and users.

The password is read from MOTOSHOP_SUPERUSER_PASSWORD or, when unset, from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if superuserName == "" {
			return errors.New("--username is required")
		}
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		application, err := app.NewCore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		user, err := application.UserService.CreateSuperuser(cmd.Context(), &domain.User{
			Username: superuserName,
			Email:    superuserEmail,
		}, password)
		if err != nil {
			return fmt.Errorf("create superuser: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func readPassword(cmd *cobra.Command) (string, error) {
	if password := os.Getenv("MOTOSHOP_SUPERUSER_PASSWORD"); password != "" {
		return password, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserName, "username", "", "Username of the new account")
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "Email of the new account")
	rootCmd.AddCommand(createSuperuserCmd)
}
