package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/pdftext"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Manage uploaded CVs",
}

var cvUploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a CV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		cv, err := client.UploadCV(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		logger.Info("cv uploaded",
			zap.Int("id", cv.ID),
			zap.String("file_name", cv.FileName),
		)

		if parsed, err := cv.Parsed(); err == nil && len(parsed.Skills) > 0 {
			fmt.Printf("detected skills: %s\n", strings.Join(parsed.Skills, ", "))
		}
		return nil
	},
}

var cvListCmd = &cobra.Command{
	Use:   "list",
	Short: "List my CVs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		list, err := client.GetMyCVs(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%d / %d CVs\n", len(list.CVs), list.MaxCVs)
		for _, cv := range list.CVs {
			fmt.Printf("  %d  %s  (uploaded %s)\n", cv.ID, cv.FileName, cv.UploadedAt)
		}
		return nil
	},
}

var cvDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a CV by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cv id %q", args[0])
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			prompt := promptui.Select{
				Label: fmt.Sprintf("Delete CV %d?", id),
				Items: []string{"No", "Yes"},
			}
			if _, answer, err := prompt.Run(); err != nil || answer != "Yes" {
				return err
			}
		}

		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		if err := client.DeleteCV(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("cv %d deleted\n", id)
		return nil
	},
}

var cvPreviewCmd = &cobra.Command{
	Use:   "preview <file.pdf>",
	Short: "Show the text a CV contains before uploading it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		text, err := pdftext.Extract(args[0])
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cvCmd)
	cvCmd.AddCommand(cvUploadCmd, cvListCmd, cvDeleteCmd, cvPreviewCmd)

	cvDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}
