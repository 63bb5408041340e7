package k8s

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

type Client struct {
	clientset kubernetes.Interface
}

// LogOptions selects which slice of a pod's log is fetched.
type LogOptions struct {
	Container string
	TailLines int64
	Previous  bool
	// LimitBytes caps how much the API server returns.
	LimitBytes int64
}

// NewClient creates a new Kubernetes client
func NewClient(kubeconfig, kubeContext string) (*Client, error) {
	// Try in-cluster config first
	config, err := rest.InClusterConfig()
	if err != nil {
		// Fall back to kubeconfig
		rules := clientcmd.NewDefaultClientConfigLoadingRules()
		rules.ExplicitPath = kubeconfig
		overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
		config, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create config: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewForClientset wraps an existing clientset.
func NewForClientset(cs kubernetes.Interface) *Client {
	return &Client{clientset: cs}
}

// ResolvePod turns a target such as "api-7f9c", "pod/api-7f9c",
// "deployment/api" or "statefulset/db" into a pod name. Workload targets
// resolve to their newest running pod.
func (c *Client) ResolvePod(ctx context.Context, namespace, target string) (string, error) {
	kind, name := "pod", target
	if parts := strings.SplitN(target, "/", 2); len(parts) == 2 {
		kind, name = parts[0], parts[1]
	}
	if name == "" {
		return "", fmt.Errorf("invalid target format: %s (expected [type/]name)", target)
	}

	var selector *metav1.LabelSelector
	switch kind {
	case "pod", "po":
		return name, nil

	case "deployment", "deploy":
		deploy, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return "", fmt.Errorf("failed to get deployment %s: %w", name, err)
		}
		selector = deploy.Spec.Selector

	case "statefulset", "sts":
		sts, err := c.clientset.AppsV1().StatefulSets(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return "", fmt.Errorf("failed to get statefulset %s: %w", name, err)
		}
		selector = sts.Spec.Selector

	default:
		return "", fmt.Errorf("unsupported target type: %s (supported: pod, deployment, statefulset)", kind)
	}

	if selector == nil {
		return "", fmt.Errorf("%s/%s has no pod selector", kind, name)
	}
	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: metav1.FormatLabelSelector(selector),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pods for %s/%s: %w", kind, name, err)
	}
	pod := pickPod(pods.Items)
	if pod == nil {
		return "", fmt.Errorf("no pods found for %s/%s", kind, name)
	}
	return pod.Name, nil
}

// pickPod prefers running pods, newest first.
func pickPod(pods []corev1.Pod) *corev1.Pod {
	if len(pods) == 0 {
		return nil
	}
	sort.SliceStable(pods, func(i, j int) bool {
		ri := pods[i].Status.Phase == corev1.PodRunning
		rj := pods[j].Status.Phase == corev1.PodRunning
		if ri != rj {
			return ri
		}
		return pods[j].CreationTimestamp.Before(&pods[i].CreationTimestamp)
	})
	return &pods[0]
}

// PodLogs reads the log of one pod container.
func (c *Client) PodLogs(ctx context.Context, namespace, pod string, opts LogOptions) (string, error) {
	logOpts := &corev1.PodLogOptions{
		Container: opts.Container,
		Previous:  opts.Previous,
	}
	if opts.TailLines > 0 {
		logOpts.TailLines = &opts.TailLines
	}
	if opts.LimitBytes > 0 {
		logOpts.LimitBytes = &opts.LimitBytes
	}

	stream, err := c.clientset.CoreV1().Pods(namespace).GetLogs(pod, logOpts).Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to stream logs of pod %s: %w", pod, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("failed to read logs of pod %s: %w", pod, err)
	}
	return string(data), nil
}
