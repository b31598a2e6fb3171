package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recrutai/recrutai-cli/internal/recrutai"
	"github.com/recrutai/recrutai-cli/internal/secrets"
	"github.com/recrutai/recrutai-cli/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the session with the RecrutAI backend",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session locally",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, err := resolvePassword(cmd)
		if err != nil {
			return err
		}

		principal, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		logger.Info("logged in",
			zap.String("email", principal.Email),
			zap.String("role", principal.Role),
		)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session locally",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		password, err := resolvePassword(cmd)
		if err != nil {
			return err
		}

		form := &recrutai.RegistrationForm{Password: password}
		form.Email, _ = cmd.Flags().GetString("email")
		form.FirstName, _ = cmd.Flags().GetString("first-name")
		form.LastName, _ = cmd.Flags().GetString("last-name")
		form.Role, _ = cmd.Flags().GetString("role")

		principal, err := client.Register(cmd.Context(), form)
		if err != nil {
			var apiErr *recrutai.APIError
			if errors.As(err, &apiErr) && apiErr.Kind == recrutai.KindValidation {
				for field, messages := range apiErr.Fields {
					fmt.Printf("  %s: %s\n", field, strings.Join(messages, "; "))
				}
			}
			return err
		}

		logger.Info("registered",
			zap.String("email", principal.Email),
			zap.String("role", principal.Role),
		)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the refresh token and clear the local session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		if err := client.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("logged out")
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the refresh token for a new access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		if err := client.Refresh(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("access token refreshed")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		if !client.Session().IsAuthenticated() {
			fmt.Println("not logged in")
			return nil
		}

		fresh, meErr := client.Me(cmd.Context())

		// Me may have invalidated the session (a 401 clears it), so the
		// snapshot is taken after the call.
		state := client.Session().State()
		if !state.Authenticated {
			fmt.Println("not logged in")
			return nil
		}

		principal := state.Principal
		if meErr == nil {
			principal = fresh
		}

		if principal != nil {
			fmt.Printf("%s <%s> (%s)\n", principal.FullName(), principal.Email, principal.Role)
		}
		if !state.ExpiresAt.IsZero() {
			fmt.Printf("access token expires %s\n", state.ExpiresAt.Local().Format(time.RFC1123))
		}
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity with the backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		message, err := client.Ping(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(pingCmd)
	authCmd.AddCommand(loginCmd, registerCmd, logoutCmd, refreshCmd, whoamiCmd)

	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().String("email", "", "account email")
		c.Flags().String("password", "", "account password (prompted when omitted)")
		c.Flags().String("password-file", "", "file containing the account password")
		c.MarkFlagRequired("email")
	}

	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("role", session.RoleCandidate, "account role: candidat or recruteur")
}

// resolvePassword picks the password from the flag, a password file or an
// interactive masked prompt, in that order.
func resolvePassword(cmd *cobra.Command) (string, error) {
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		return password, nil
	}

	if file, _ := cmd.Flags().GetString("password-file"); file != "" {
		return secrets.Load(secrets.Source{Name: "account password", File: file})
	}

	prompt := promptui.Prompt{Label: "Password", Mask: '*'}
	return prompt.Run()
}
