package cmd

import (
	"fmt"

	"github.com/helmcode/logtriage/pkg/model"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewFileCmd() *cobra.Command {
	var copyTo string

	cmd := &cobra.Command{
		Use:   "file PATH",
		Short: "Upload a .log or .txt file for analysis",
		Long: `Upload a log file to the analysis service as a multipart form. The
service applies its own size limit.

Examples:
  logtriage file /var/log/app/app.log
  logtriage file incident.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCopy(copyTo); err != nil {
				return err
			}

			f, err := model.FileFromPath(args[0])
			if err != nil {
				return fmt.Errorf("failed to select file: %w", err)
			}

			s := loadSettings()
			stderr := cmd.ErrOrStderr()
			if !f.HasAcceptedExtension() {
				printWarning(stderr, fmt.Sprintf("%s is not a .log or .txt file; uploading anyway", f.Name))
			}
			log.WithFields(log.Fields{"file": f.Name, "size": f.Size}).Debug("selected file")

			ctrl := newController(s)
			ctrl.SelectFile(f)
			if s.Output == "human" {
				printHeader(stderr, f.Name, s)
			}

			return runAnalysis(cmd.Context(), cmd, ctrl, s, copyTo, ctrl.AnalyzeByFile)
		},
	}

	addCopyFlag(cmd, &copyTo)

	return cmd
}
