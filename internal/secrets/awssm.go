package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the slice of the AWS Secrets Manager client this
// provider needs. The concrete *secretsmanager.Client satisfies it; tests
// inject fakes.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager fetches one named secret per environment from AWS Secrets
// Manager. The secret name is derived from NameTemplate by substituting {app}
// and {env}; a JSON SecretString becomes a nested mapping, anything else is
// exposed under the key "value".
type AWSSecretsManager struct {
	client   SecretsManagerAPI
	template string
	app      string
}

// NewAWSSecretsManager builds a provider around an injected client.
// nameTemplate defaults to "/{app}/{env}/secrets".
func NewAWSSecretsManager(client SecretsManagerAPI, app, nameTemplate string) *AWSSecretsManager {
	if nameTemplate == "" {
		nameTemplate = "/{app}/{env}/secrets"
	}
	return &AWSSecretsManager{client: client, template: nameTemplate, app: app}
}

// NewAWSSecretsManagerFromEnv builds the provider with a client from the
// ambient AWS configuration (shared config files, env vars, instance role).
func NewAWSSecretsManagerFromEnv(ctx context.Context, app, nameTemplate string) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewAWSSecretsManager(secretsmanager.NewFromConfig(cfg), app, nameTemplate), nil
}

func (p *AWSSecretsManager) Name() string { return "aws-secretsmanager" }

func (p *AWSSecretsManager) GetSecrets(ctx context.Context, env string) (map[string]any, error) {
	name := expandTemplate(p.template, p.app, env)
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, &RetrievalError{Provider: p.Name(), Env: env, Err: fmt.Errorf("get secret %s: %w", name, err)}
	}
	if out.SecretString == nil || *out.SecretString == "" {
		// Binary-only secrets are not configuration material.
		return map[string]any{}, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(*out.SecretString), &parsed); err == nil {
		if m, ok := parsed.(map[string]any); ok {
			return m, nil
		}
		return map[string]any{"value": parsed}, nil
	}
	return map[string]any{"value": *out.SecretString}, nil
}

func expandTemplate(template, app, env string) string {
	out := strings.ReplaceAll(template, "{app}", app)
	return strings.ReplaceAll(out, "{env}", env)
}
