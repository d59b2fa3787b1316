package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered accounts",
	RunE:    runUsersList,
}

var usersShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersShow,
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete [user-id]",
	Aliases: []string{"rm"},
	Short:   "Delete an account (not supported by the backend)",
	Args:    cobra.ExactArgs(1),
	RunE:    runUsersDelete,
}

func init() {
	adminUsersCmd.AddCommand(usersListCmd)
	adminUsersCmd.AddCommand(usersShowCmd)
	adminUsersCmd.AddCommand(usersDeleteCmd)

	usersDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a, _, err := openAdmin(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.directory.FetchAllUsers(cmd.Context())
	if !res.Success() {
		return fmt.Errorf("failed to fetch users: %s", res.Message())
	}
	if len(res.Value) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	now := time.Now()
	fmt.Printf("\n👥 Users (%d)\n", len(res.Value))
	fmt.Println(strings.Repeat("─", 72))
	for _, u := range res.Value {
		fmt.Printf("  %-10s  %-20s  %-28s  %-5s  %s\n",
			shortID(u.ID), truncate(u.Name, 20), truncate(u.Email, 28), u.Role, u.MemberFor(now))
	}
	fmt.Println()
	return nil
}

func runUsersShow(cmd *cobra.Command, args []string) error {
	a, console, err := openAdmin(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if res := a.directory.FetchAllUsers(cmd.Context()); !res.Success() {
		return fmt.Errorf("failed to fetch users: %s", res.Message())
	}
	res := console.ViewUser(args[0])
	if !res.Success() {
		return res.Err
	}

	printAccount(res.Value, time.Now())
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	a, console, err := openAdmin(cmd.Context(), deleteForce)
	if err != nil {
		return err
	}
	defer a.Close()

	res := console.DeleteUser(cmd.Context(), args[0])
	return reportCancel(res.Err)
}

func printAccount(u model.Account, now time.Time) {
	fmt.Printf("👤 %s\n", u.Name)
	fmt.Printf("   ID:     %s\n", u.ID)
	fmt.Printf("   Email:  %s\n", u.Email)
	fmt.Printf("   Role:   %s\n", u.Role)
	if u.Phone != "" {
		fmt.Printf("   Phone:  %s\n", u.Phone)
	}
	if !u.CreatedAt.IsZero() {
		fmt.Printf("   Joined: %s (member for %s)\n", u.CreatedAt.Format("Jan 2, 2006"), u.MemberFor(now))
	}
}
