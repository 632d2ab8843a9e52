package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Adding the following variables, so that the code can be tested
var (
	inClusterConfig      = rest.InClusterConfig
	buildConfigFromFlags = clientcmd.BuildConfigFromFlags
	newForConfig         = kubernetes.NewForConfig
)

// namespaceActiveTimeout bounds how long CreateNamespace waits for the namespace to become Active
var namespaceActiveTimeout = 10 * time.Second

type Client struct {
	ClientSet kubernetes.Interface
}

// NewClient creates a new Kubernetes client. It first tries the in-cluster
// config and falls back to $HOME/.kube/config.
func NewClient() (*Client, error) {
	config, err := inClusterConfig()
	if err != nil {
		kubeconfig := filepath.Join(os.Getenv("HOME"), ".kube", "config")
		config, err = buildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	return NewClientWithConfig(config)
}

// NewClientWithConfig builds a client from an explicit rest config
func NewClientWithConfig(config *rest.Config) (*Client, error) {
	clientset, err := newForConfig(config)
	if err != nil {
		return nil, err
	}
	return &Client{ClientSet: clientset}, nil
}

// CreateNamespace creates the namespace and waits for it to become Active.
// An already existing namespace is treated as success.
func (c *Client) CreateNamespace(ctx context.Context, name string) error {
	ns := &v1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}

	_, err := c.ClientSet.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return nil
		}
		return fmt.Errorf("failed to create namespace %q: %w", name, err)
	}

	deadline := time.Now().Add(namespaceActiveTimeout)
	for time.Now().Before(deadline) {
		got, err := c.ClientSet.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
		// envtest and fake clientsets leave Phase empty
		if err == nil && (got.Status.Phase == v1.NamespaceActive || got.Status.Phase == "") {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}

	return fmt.Errorf("namespace %q did not become Active within %s", name, namespaceActiveTimeout)
}
