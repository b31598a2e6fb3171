package cmd

import (
	"fmt"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/export"
	"github.com/recrutai/recrutai-cli/internal/filtering"
	"github.com/recrutai/recrutai-cli/internal/recrutai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rankCmd = &cobra.Command{
	Use:   "rank <cv.pdf> [more.pdf ...]",
	Short: "Upload a batch of CVs and rank them against a job description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		config, err := getConfig()
		if err != nil {
			return err
		}

		jobText, err := resolveJobText(cmd)
		if err != nil {
			return err
		}

		rankings, err := client.RankCVs(cmd.Context(), args, jobText)
		if err != nil {
			return err
		}

		logger.Info("ranking received", zap.Int("count", rankings.Len()))

		rankings, err = filtering.Run(rankFilters(cmd, config), rankings, logger)
		if err != nil {
			return err
		}

		if rankings.Len() == 0 {
			fmt.Println("no candidates left after filters")
			return nil
		}

		printRankings(rankings)

		if out, _ := cmd.Flags().GetString("export"); out != "" {
			if err := export.WriteRankings(out, jobTitleFrom(jobText), rankings); err != nil {
				return err
			}
			logger.Info("ranking exported", zap.String("file", out))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job-text", "", "job description text")
	rankCmd.Flags().String("job-file", "", "file containing the job description")
	rankCmd.Flags().Float64("min-score", 0, "drop candidates scoring below this value")
	rankCmd.Flags().StringSlice("require-keyword", nil, "keep only candidates matching these keywords")
	rankCmd.Flags().String("exclude-emails-file", "", "file with candidate emails to exclude, one per line")
	rankCmd.Flags().String("export", "", "write the ranking to an .xlsx file")
}

// rankFilters builds the post-processing pipeline from flags, falling back
// to the rank section of the config file.
func rankFilters(cmd *cobra.Command, config *Config) []filtering.Filter {
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	keywords, _ := cmd.Flags().GetStringSlice("require-keyword")
	excludeFile, _ := cmd.Flags().GetString("exclude-emails-file")

	if config.Rank != nil {
		if minScore == 0 {
			minScore = config.Rank.MinScore
		}
		if len(keywords) == 0 {
			keywords = config.Rank.RequiredKeywords
		}
		if excludeFile == "" {
			excludeFile = config.Rank.ExcludeFile
		}
	}

	return []filtering.Filter{
		filtering.NewMinScore(minScore),
		filtering.NewRequiredKeywords(keywords),
		filtering.NewExcludeEmails(excludeFile),
	}
}

func printRankings(rankings *recrutai.Rankings) {
	for i, item := range rankings.Items {
		fmt.Printf("%2d. %-28s %-30s %3.0f%%  %s\n",
			i+1, item.CandidateName, item.CandidateEmail, item.Score,
			strings.Join(item.MatchedKeywords, ", "),
		)
	}
}

// jobTitleFrom uses the first line of the job description as a workbook
// title.
func jobTitleFrom(jobText string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(jobText), "\n")
	if runes := []rune(line); len(runes) > 80 {
		line = string(runes[:80])
	}
	return line
}
