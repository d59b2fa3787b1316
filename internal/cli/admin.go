package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/existflow/plotline/internal/admin"
	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer properties and users",
	Long: `Admin commands require an admin session. Start one with:

  plotline admin login`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an admin",
	RunE:  runAdminLogin,
}

var adminConsoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the admin console",
	RunE:  runAdminConsole,
}

var adminPlotsCmd = &cobra.Command{
	Use:     "plots",
	Aliases: []string{"properties"},
	Short:   "Add, edit and delete properties",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse registered accounts",
}

func init() {
	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminConsoleCmd)
	adminCmd.AddCommand(adminPlotsCmd)
	adminCmd.AddCommand(adminUsersCmd)

	adminLoginCmd.Flags().StringVar(&authEmail, "email", "", "Admin email (prompted if empty)")
}

func runAdminLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	creds := readCredentials(newPrompter())

	fmt.Println("🔄 Logging in as admin...")
	res := a.session.LoginAdmin(cmd.Context(), creds)
	if !res.Success() {
		return fmt.Errorf("admin login failed: %s", res.Message())
	}

	fmt.Printf("✅ Logged in as %s (%s)\n", displayName(res.Value), res.Value.Role)
	return nil
}

// openAdmin opens the app and runs the admin guard. The caller closes the app.
func openAdmin(ctx context.Context, force bool) (*app, *admin.Console, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}

	console := a.console(force)
	if res := console.Guard(ctx); !res.Success() {
		a.Close()
		return nil, nil, fmt.Errorf("%s\nRun: plotline admin login", res.Message())
	}
	return a, console, nil
}

func runAdminConsole(cmd *cobra.Command, args []string) error {
	a, _, err := openAdmin(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	return runConsole(a, true)
}

// reportCancel turns a declined confirmation into a plain message
func reportCancel(err error) error {
	if errors.Is(err, model.ErrCancelled) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
