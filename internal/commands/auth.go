package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memberdesk/internal/api"
	"memberdesk/internal/config"
	"memberdesk/internal/models"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the membership server",
	Long:  "Authenticate as a staff user. The token is saved in the global config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalConfig.ServerURL == "" {
			return fmt.Errorf("server URL not configured, run 'memberdesk config set --server-url <url>'")
		}

		email := strings.TrimSpace(loginEmail)
		if email == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Email: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("error reading email: %w", err)
			}
			email = strings.TrimSpace(line)
		}

		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		passwordBytes, err := term.ReadPassword(os.Stdin.Fd())
		if err != nil {
			return fmt.Errorf("error reading password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())

		client := api.NewClient(globalConfig.ServerURL, "", logger)
		auth, err := client.Login(cmd.Context(), email, string(passwordBytes))
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		globalConfig.AuthToken = auth.Token
		globalConfig.UserID = auth.UserID
		globalConfig.Email = auth.Email

		if err := config.SaveGlobalConfig(globalConfig); err != nil {
			return fmt.Errorf("error saving global config: %w", err)
		}

		logger.Debug("logged in", zap.String("user_id", auth.UserID))
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in as %s\n", auth.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the membership server",
	Long:  "Remove saved authentication credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !globalConfig.LoggedIn() {
			fmt.Fprintln(cmd.OutOrStdout(), "You are not logged in")
			return nil
		}

		client := api.NewClient(globalConfig.ServerURL, globalConfig.AuthToken, logger)
		if err := client.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("error during logout: %w", err)
		}

		globalConfig.AuthToken = ""
		globalConfig.UserID = ""
		globalConfig.Email = ""

		if err := config.SaveGlobalConfig(globalConfig); err != nil {
			return fmt.Errorf("error saving global config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current user information",
	Long:  "Display the signed-in staff user and their role",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !globalConfig.LoggedIn() {
			fmt.Fprintln(out, "You are not logged in")
			return nil
		}

		client := api.NewClient(globalConfig.ServerURL, globalConfig.AuthToken, logger)
		user, err := client.GetCurrentUser(cmd.Context())
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			fmt.Fprintln(out, "Your session has expired, run 'memberdesk login' again")
			return nil
		case err != nil:
			logger.Warn("could not fetch user details", zap.Error(err))
			fmt.Fprintf(out, "Logged in as: %s\n", globalConfig.Email)
			fmt.Fprintf(out, "User ID: %s\n", globalConfig.UserID)
			fmt.Fprintf(out, "Server: %s\n", globalConfig.ServerURL)
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Fprintf(out, "Logged in as: %s <%s>\n", bold(user.Name), user.Email)
		fmt.Fprintf(out, "User ID: %s\n", user.UserID)
		fmt.Fprintf(out, "Role: %s\n", user.Role)
		if user.Location != "" {
			fmt.Fprintf(out, "Location: %s\n", user.Location)
		}
		fmt.Fprintf(out, "Server: %s\n", globalConfig.ServerURL)
		return nil
	},
}

// newAPIClient returns a client for the signed-in user
func newAPIClient() (*api.Client, error) {
	if !globalConfig.LoggedIn() {
		return nil, fmt.Errorf("you are not logged in, run 'memberdesk login' first")
	}
	return api.NewClient(globalConfig.ServerURL, globalConfig.AuthToken, logger), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Staff email address")
}
