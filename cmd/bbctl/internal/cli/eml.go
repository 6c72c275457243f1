package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/email"
)

type emlOutput struct {
	From         string             `json:"from"`
	To           []string           `json:"to"`
	Subject      string             `json:"subject"`
	Date         time.Time          `json:"date"`
	Body         string             `json:"body"`
	Attachments  []email.Attachment `json:"attachments,omitempty"`
	WorkflowType email.WorkflowType `json:"workflow_type"`
}

func newEmlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eml FILE",
		Short: "Decode an .eml message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			msg, err := email.NewParser().Parse(f)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), emlOutput{
				From:         msg.From,
				To:           msg.To,
				Subject:      msg.Subject,
				Date:         msg.Date,
				Body:         msg.Body,
				Attachments:  msg.Attachments,
				WorkflowType: email.DetectWorkflowType(msg),
			})
		},
	}
}
