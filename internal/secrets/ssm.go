package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"strata/internal/keypath"
)

// SSMAPI is the slice of the AWS SSM client the parameter-store provider
// needs.
type SSMAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// SSMParameterStore reads every parameter under a path prefix and nests them
// by their remaining path segments: /myapp/dev/db/host -> db.host. The path
// prefix is derived from PathTemplate by substituting {app} and {env}.
type SSMParameterStore struct {
	client         SSMAPI
	template       string
	app            string
	withDecryption bool
}

// NewSSMParameterStore builds a provider around an injected client.
// pathTemplate defaults to "/{app}/{env}/". SecureString parameters are
// decrypted.
func NewSSMParameterStore(client SSMAPI, app, pathTemplate string) *SSMParameterStore {
	if pathTemplate == "" {
		pathTemplate = "/{app}/{env}/"
	}
	return &SSMParameterStore{client: client, template: pathTemplate, app: app, withDecryption: true}
}

// NewSSMParameterStoreFromEnv builds the provider with a client from the
// ambient AWS configuration.
func NewSSMParameterStoreFromEnv(ctx context.Context, app, pathTemplate string) (*SSMParameterStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSSMParameterStore(ssm.NewFromConfig(cfg), app, pathTemplate), nil
}

func (p *SSMParameterStore) Name() string { return "aws-ssm" }

func (p *SSMParameterStore) GetSecrets(ctx context.Context, env string) (map[string]any, error) {
	path := expandTemplate(p.template, p.app, env)
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	out := map[string]any{}
	var nextToken *string
	for {
		resp, err := p.client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(path),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(p.withDecryption),
			NextToken:      nextToken,
		})
		if err != nil {
			return nil, &RetrievalError{Provider: p.Name(), Env: env, Err: fmt.Errorf("list parameters under %s: %w", path, err)}
		}
		for _, param := range resp.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			rel := strings.TrimPrefix(*param.Name, path)
			segments := splitParameterPath(rel)
			if len(segments) == 0 {
				continue
			}
			if err := keypath.SetAtPath(out, segments, *param.Value, *param.Name); err != nil {
				return nil, &RetrievalError{Provider: p.Name(), Env: env, Err: err}
			}
		}
		nextToken = resp.NextToken
		if nextToken == nil {
			return out, nil
		}
	}
}

func splitParameterPath(rel string) []string {
	parts := strings.Split(strings.Trim(rel, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
