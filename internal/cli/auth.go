package cli

import (
	"fmt"

	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your session",
	Long:  `Register, log in and out of the listing backend.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored token",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is logged in",
	RunE:  runStatus,
}

var authEmail string

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email (prompted if empty)")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email (prompted if empty)")
}

// readCredentials prompts for whatever the flags did not provide
func readCredentials(p *prompter) model.Credentials {
	email := authEmail
	if email == "" {
		email = p.line("Email: ")
	}
	return model.Credentials{Email: email, Password: p.password("Password: ")}
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	creds := readCredentials(newPrompter())

	fmt.Println("🔄 Logging in...")
	res := a.session.Login(cmd.Context(), creds)
	if !res.Success() {
		return fmt.Errorf("login failed: %s", res.Message())
	}

	fmt.Printf("✅ Logged in as %s\n", displayName(res.Value))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.session.IsAuthenticated(cmd.Context()) {
		fmt.Println("Not logged in.")
	}

	if res := a.session.Logout(cmd.Context()); !res.Success() {
		return fmt.Errorf("logout failed: %s", res.Message())
	}

	fmt.Println("✅ Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p := newPrompter()
	reg := model.Registration{Name: p.line("Name: "), Email: authEmail}
	if reg.Email == "" {
		reg.Email = p.line("Email: ")
	}
	reg.Password = p.password("Password: ")
	if confirm := p.password("Confirm Password: "); confirm != reg.Password {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("🔄 Creating account...")
	res := a.session.Register(cmd.Context(), reg)
	if !res.Success() {
		return fmt.Errorf("registration failed: %s", res.Message())
	}

	fmt.Printf("✅ Account created for %s. Log in with: plotline auth login\n", displayName(res.Value))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	current, ok := a.session.Current()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("👤 %s\n", displayName(current.User))
	fmt.Printf("   Role:    %s\n", current.Role)
	fmt.Printf("   Token:   %s\n", tokenState(a.session.IsAuthenticated(cmd.Context())))
	fmt.Printf("   Backend: %s\n", a.client.BaseURL())
	if a.session.IsAdmin(cmd.Context()) {
		fmt.Println("   Admin:   yes (plotline admin console)")
	}
	return nil
}

func tokenState(ok bool) string {
	if ok {
		return "stored"
	}
	return "missing"
}
