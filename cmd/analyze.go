package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/logger"
	"github.com/recrutai/recrutai-cli/internal/recrutai"
	"github.com/recrutai/recrutai-cli/internal/secrets"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare a CV against a job description",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		cvID, _ := cmd.Flags().GetInt("cv")
		jobText, err := resolveJobText(cmd)
		if err != nil {
			return err
		}

		result, err := client.AnalyzeWithJobText(cmd.Context(), cvID, jobText)
		if err != nil {
			return err
		}

		printAnalysis(result)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past analyses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		entries, err := client.History(cmd.Context())
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("no analyses yet")
			return nil
		}

		for _, entry := range entries {
			fmt.Printf("%s  cv %d  score %.0f%%  %q\n",
				entry.CreatedAt, entry.CVID, entry.CompatibilityScore,
				logger.TruncateForLog(entry.JobOfferText, 60),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)

	analyzeCmd.Flags().Int("cv", 0, "id of an uploaded CV")
	analyzeCmd.Flags().String("job-text", "", "job description text")
	analyzeCmd.Flags().String("job-file", "", "file containing the job description")
	analyzeCmd.MarkFlagRequired("cv")
}

// resolveJobText reads the job description from the flag or a file.
func resolveJobText(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("job-text"); strings.TrimSpace(text) != "" {
		return text, nil
	}

	if file, _ := cmd.Flags().GetString("job-file"); file != "" {
		return secrets.Load(secrets.Source{Name: "job description", File: file})
	}

	return "", errors.New("provide the job description via --job-text or --job-file")
}

func printAnalysis(result *recrutai.AnalysisResult) {
	fmt.Printf("compatibility score: %.0f%%\n", result.CompatibilityScore)
	if len(result.MatchedKeywords) > 0 {
		fmt.Printf("matched keywords:    %s\n", strings.Join(result.MatchedKeywords, ", "))
	}
	if len(result.MissingKeywords) > 0 {
		fmt.Printf("missing keywords:    %s\n", strings.Join(result.MissingKeywords, ", "))
	}
	if result.Summary != "" {
		fmt.Printf("\n%s\n", result.Summary)
	}
}
