package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helmcode/logtriage/pkg/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the triage form as a local web page",
		Long: `Start a local web page with the paste and upload forms. Submissions are
forwarded to the analysis service and the report is rendered in the page.

Examples:
  logtriage serve
  logtriage serve --listen 0.0.0.0:5173 --api-url http://triage.internal:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings()
			if !verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := &http.Server{
				Addr:              listen,
				Handler:           web.NewRouter(newTriageClient(s)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Serving on http://%s (analysis service %s)", listen, s.APIURL))
			log.WithFields(log.Fields{"listen": listen, "api_url": s.APIURL}).Info("web server starting")

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("web server failed: %w", err)
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:5173", "Address to serve the page on")

	return cmd
}
