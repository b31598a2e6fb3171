package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/recrutai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Manage job offers",
}

var offerPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a job offer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		offer := &recrutai.NewJobOffer{}
		offer.Title, _ = cmd.Flags().GetString("title")
		offer.Description, _ = cmd.Flags().GetString("description")
		offer.Requirements, _ = cmd.Flags().GetStringSlice("requirement")
		offer.Location, _ = cmd.Flags().GetString("location")
		offer.Deadline, _ = cmd.Flags().GetString("deadline")

		created, err := client.CreateJobOffer(cmd.Context(), offer)
		if err != nil {
			return err
		}

		logger.Info("job offer created",
			zap.Int("id", created.ID),
			zap.String("title", created.Title),
		)
		return nil
	},
}

var offerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List my job offers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		offers, err := client.GetMyJobOffers(cmd.Context())
		if err != nil {
			return err
		}

		printOffers(offers)
		return nil
	},
}

var offerAnalyzeCmd = &cobra.Command{
	Use:   "analyze <offer-id>",
	Short: "Score a CV against a stored offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offerID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid offer id %q", args[0])
		}

		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		cvID, _ := cmd.Flags().GetInt("cv")
		result, err := client.AnalyzeOffer(cmd.Context(), offerID, cvID)
		if err != nil {
			return err
		}

		printAnalysis(result)
		return nil
	},
}

var offerRankCmd = &cobra.Command{
	Use:   "rank <offer-id>",
	Short: "Rank all candidate CVs against a stored offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offerID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid offer id %q", args[0])
		}

		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		rankings, err := client.RankByOffer(cmd.Context(), offerID)
		if err != nil {
			return err
		}

		if len(rankings) == 0 {
			fmt.Println("no CVs to rank")
			return nil
		}

		for i, ranking := range rankings {
			name := "unknown"
			if ranking.CV != nil {
				name = ranking.CV.FileName
			}
			score := 0.0
			matched := ""
			if ranking.Analysis != nil {
				score = ranking.Analysis.CompatibilityScore
				matched = strings.Join(ranking.Analysis.MatchedKeywords, ", ")
			}
			fmt.Printf("%2d. %-30s %3.0f%%  %s\n", i+1, name, score, matched)
		}
		return nil
	},
}

var offerByRecruiterCmd = &cobra.Command{
	Use:   "by-recruiter <recruiter-id>",
	Short: "List another recruiter's offers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recruiterID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recruiter id %q", args[0])
		}

		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		offers, err := client.JobOffersByRecruiter(cmd.Context(), recruiterID)
		if err != nil {
			return err
		}

		printOffers(offers)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(offerCmd)
	offerCmd.AddCommand(offerPostCmd, offerListCmd, offerAnalyzeCmd, offerRankCmd, offerByRecruiterCmd)

	offerAnalyzeCmd.Flags().Int("cv", 0, "id of the CV to score (defaults to your uploaded CV)")

	offerPostCmd.Flags().String("title", "", "offer title")
	offerPostCmd.Flags().String("description", "", "offer description")
	offerPostCmd.Flags().StringSlice("requirement", nil, "required skill, repeatable")
	offerPostCmd.Flags().String("location", "", "offer location")
	offerPostCmd.Flags().String("deadline", "", "application deadline")
	offerPostCmd.MarkFlagRequired("title")
	offerPostCmd.MarkFlagRequired("description")
}

func printOffers(offers []*recrutai.JobOffer) {
	if len(offers) == 0 {
		fmt.Println("no job offers")
		return
	}

	for _, offer := range offers {
		fmt.Printf("%d  %-40s %s\n", offer.ID, offer.Title, offer.Status)
		if len(offer.Requirements) > 0 {
			fmt.Printf("   requires: %s\n", strings.Join(offer.Requirements, ", "))
		}
	}
}
