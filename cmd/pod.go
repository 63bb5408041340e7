package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/helmcode/logtriage/pkg/k8s"
	"github.com/helmcode/logtriage/pkg/model"
	"github.com/spf13/cobra"
)

func NewPodCmd() *cobra.Command {
	var (
		kubeconfig  string
		kubeContext string
		namespace   string
		container   string
		tail        int64
		previous    bool
		copyTo      string
	)

	cmd := &cobra.Command{
		Use:   "pod TARGET",
		Short: "Analyze the logs of a Kubernetes pod",
		Long: `Fetch the logs of a pod (or of the newest running pod of a deployment or
statefulset) and send them for analysis as text.

Examples:
  # Analyze the last 500 lines of a pod
  logtriage pod api-7f9c6d-x2k4q -n production

  # Analyze the crashed container of a deployment's newest pod
  logtriage pod deployment/api -n production -c app --previous

  # Copy the grep block afterwards
  logtriage pod sts/postgres --tail 2000 --copy grep`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCopy(copyTo); err != nil {
				return err
			}

			s := loadSettings()
			stderr := cmd.ErrOrStderr()
			human := s.Output == "human"
			ctx := cmd.Context()

			sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(stderr))
			sp.Suffix = " Connecting to Kubernetes cluster..."
			if human {
				sp.Start()
			}

			k8sClient, err := k8s.NewClient(kubeconfig, kubeContext)
			if err != nil {
				sp.Stop()
				return fmt.Errorf("failed to connect to cluster: %w", err)
			}

			pod, err := k8sClient.ResolvePod(ctx, namespace, args[0])
			if err != nil {
				sp.Stop()
				return err
			}

			sp.Suffix = fmt.Sprintf(" Fetching logs of %s/%s...", namespace, pod)
			logs, err := k8sClient.PodLogs(ctx, namespace, pod, k8s.LogOptions{
				Container: container,
				TailLines: tail,
				Previous:  previous,
				// The text request carries at most MaxLogChars runes of up to 4 bytes.
				LimitBytes: 4 * model.MaxLogChars,
			})
			sp.Stop()
			if err != nil {
				return err
			}

			if human {
				printSuccess(stderr, fmt.Sprintf("Fetched logs of pod %s/%s", namespace, pod))
				printHeader(stderr, fmt.Sprintf("pod %s/%s", namespace, pod), s)
			}

			ctrl := newController(s)
			setLogText(stderr, ctrl, logs)
			if !ctrl.CanAnalyzeText() {
				return fmt.Errorf("pod %s/%s has no log output", namespace, pod)
			}

			return runAnalysis(ctx, cmd, ctrl, s, copyTo, ctrl.AnalyzeByText)
		},
	}

	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig file (defaults to $KUBECONFIG or ~/.kube/config)")
	cmd.Flags().StringVar(&kubeContext, "context", "", "Kubeconfig context (overrides current-context)")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "Kubernetes namespace")
	cmd.Flags().StringVarP(&container, "container", "c", "", "Container name (defaults to the pod's only container)")
	cmd.Flags().Int64Var(&tail, "tail", 500, "Number of most recent log lines to fetch (0 for all)")
	cmd.Flags().BoolVar(&previous, "previous", false, "Fetch the logs of the previous terminated container")
	addCopyFlag(cmd, &copyTo)

	return cmd
}
