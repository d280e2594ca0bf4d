package secrets

import (
	"context"
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// Vault reads one secret path per environment from HashiCorp Vault. The path
// is derived from MountTemplate ("secret/{app}/{env}" by default); the first
// segment is the mount point. Versioned selects the KV v2 read API.
type Vault struct {
	client    *vault.Client
	template  string
	app       string
	versioned bool
}

// NewVault builds a provider around an existing Vault client (address and
// token come from the client's configuration).
func NewVault(client *vault.Client, app, mountTemplate string, versioned bool) *Vault {
	if mountTemplate == "" {
		mountTemplate = "secret/{app}/{env}"
	}
	return &Vault{client: client, template: mountTemplate, app: app, versioned: versioned}
}

// NewVaultFromEnv builds the provider with a client configured from the
// standard VAULT_ADDR / VAULT_TOKEN environment.
func NewVaultFromEnv(app, mountTemplate string, versioned bool) (*Vault, error) {
	client, err := vault.NewClient(vault.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	return NewVault(client, app, mountTemplate, versioned), nil
}

func (p *Vault) Name() string { return "vault" }

func (p *Vault) GetSecrets(ctx context.Context, env string) (map[string]any, error) {
	name := expandTemplate(p.template, p.app, env)

	if p.versioned {
		mount, rel, found := strings.Cut(name, "/")
		if !found {
			rel = ""
		}
		secret, err := p.client.KVv2(mount).Get(ctx, rel)
		if err != nil {
			return nil, &RetrievalError{Provider: p.Name(), Env: env, Err: fmt.Errorf("read kv2 %s: %w", name, err)}
		}
		if secret == nil || secret.Data == nil {
			return map[string]any{}, nil
		}
		return secret.Data, nil
	}

	secret, err := p.client.Logical().ReadWithContext(ctx, name)
	if err != nil {
		return nil, &RetrievalError{Provider: p.Name(), Env: env, Err: fmt.Errorf("read %s: %w", name, err)}
	}
	if secret == nil || secret.Data == nil {
		return map[string]any{}, nil
	}
	return secret.Data, nil
}
