package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage authentication with the novaq server.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from the server",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login status",
	RunE:  runStatus,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().String("magic", "", "Request a one-time login code for this email")
	loginCmd.Flags().String("server", "", "Set the server URL before logging in")
}

func promptLine(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(passwordBytes)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		if err := client.SetServer(server); err != nil {
			return err
		}
	}

	// Magic link flow
	if email, _ := cmd.Flags().GetString("magic"); email != "" {
		fmt.Printf("🔄 Requesting login code for %s...\n", email)
		if err := client.RequestMagicLink(email); err != nil {
			return err
		}
		fmt.Println("📬 Code requested! Check your email (or server logs in dev).")

		code := promptLine("Enter login code: ")
		if code == "" {
			fmt.Println("❌ Code required.")
			return nil
		}

		if err := client.RedeemMagicLink(email, code); err != nil {
			return err
		}
		fmt.Println("✅ Logged in successfully!")
		return nil
	}

	// Password login
	email := promptLine("Email: ")
	password := promptPassword("Password: ")

	fmt.Println("🔄 Logging in...")
	if err := client.Login(email, password); err != nil {
		return err
	}

	fmt.Println("✅ Logged in successfully!")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if !client.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := client.Logout(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out successfully.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	email := promptLine("Email: ")
	password := promptPassword("Password: ")
	confirm := promptPassword("Confirm Password: ")

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("🔄 Creating account...")
	if err := client.Register(email, password); err != nil {
		return err
	}

	fmt.Println("✅ Account created and logged in!")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	fmt.Printf("Server: %s\n", client.ServerURL())
	if client.LoggedIn() {
		fmt.Printf("Logged in as user %s\n", client.UserID())
	} else {
		fmt.Println("Not logged in.")
	}
	return nil
}
