package k8s

import "context"

// K8sClient defines the Kubernetes operations the credential store needs, so it can be mocked in tests
type K8sClient interface {
	CreateSecret(ctx context.Context, namespace, name string, data map[string]string) error
	GetSecret(ctx context.Context, namespace, name string) (map[string]string, error)
	CreateNamespace(ctx context.Context, name string) error
}

var _ K8sClient = (*Client)(nil)
