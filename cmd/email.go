package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/secrets"

	"github.com/spf13/cobra"
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Ask the backend to mail a candidate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		candidateID, _ := cmd.Flags().GetInt("candidate")
		subject, _ := cmd.Flags().GetString("subject")

		message, err := resolveMessage(cmd)
		if err != nil {
			return err
		}

		if err := client.SendEmail(cmd.Context(), candidateID, subject, message); err != nil {
			return err
		}

		fmt.Printf("email sent to candidate %d\n", candidateID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	emailCmd.Flags().Int("candidate", 0, "candidate id")
	emailCmd.Flags().String("subject", "", "email subject")
	emailCmd.Flags().String("message", "", "email body text")
	emailCmd.Flags().String("message-file", "", "file containing the email body")
	emailCmd.MarkFlagRequired("candidate")
	emailCmd.MarkFlagRequired("subject")
}

func resolveMessage(cmd *cobra.Command) (string, error) {
	if message, _ := cmd.Flags().GetString("message"); strings.TrimSpace(message) != "" {
		return message, nil
	}

	if file, _ := cmd.Flags().GetString("message-file"); file != "" {
		return secrets.Load(secrets.Source{Name: "email message", File: file})
	}

	return "", errors.New("provide the email body via --message or --message-file")
}
