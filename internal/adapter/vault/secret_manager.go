package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
)

// SecretManager reads service secrets from a KV v2 mount.
type SecretManager struct {
	client *api.Client
	mount  string
	prefix string
}

// NewSecretManager creates a Vault client reading KV v2 secrets under mount/prefix.
func NewSecretManager(address, token, mount, prefix string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	if mount == "" {
		mount = "secret"
	}
	return &SecretManager{
		client: client,
		mount:  strings.Trim(mount, "/"),
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// GetDatabaseURL reads the database connection string.
func (sm *SecretManager) GetDatabaseURL(ctx context.Context) (string, error) {
	return sm.read(ctx, "database", "connection_string")
}

// GetAttachmentToken returns the bearer token for the document service.
func (sm *SecretManager) GetAttachmentToken(ctx context.Context) (string, error) {
	return sm.read(ctx, "attachments", "token")
}

func (sm *SecretManager) read(ctx context.Context, name, field string) (string, error) {
	path := sm.mount + "/data/" + name
	if sm.prefix != "" {
		path = sm.mount + "/data/" + sm.prefix + "/" + name
	}

	secret, err := sm.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", path, err)
	}
	if secret == nil {
		return "", fmt.Errorf("vault read %s: secret not found", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("vault read %s: not a kv v2 secret", path)
	}
	value, ok := data[field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("vault read %s: field %q missing", path, field)
	}
	return value, nil
}
