package k8s

import (
	"context"
	"fmt"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CreateSecret creates a new opaque Kubernetes secret holding data
func (c *Client) CreateSecret(ctx context.Context, namespace, name string, data map[string]string) error {
	secret := &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name: name, //this must be set
		},
		StringData: data,
		Type:       v1.SecretTypeOpaque,
	}

	_, err := c.ClientSet.CoreV1().Secrets(namespace).Create(ctx, secret, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create secret: %w", err)
	}
	return nil
}

// GetSecret retrieves a Kubernetes secret as a map[string]string.
// StringData is merged in because fake clientsets do not convert it to Data.
func (c *Client) GetSecret(ctx context.Context, namespace, name string) (map[string]string, error) {
	secret, err := c.ClientSet.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}

	result := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.Data {
		result[k] = string(v) // convert from []byte to string
	}
	for k, v := range secret.StringData {
		result[k] = v
	}

	return result, nil
}
