// Package secrets defines the pluggable secrets-provider capability and its
// built-in implementations: AWS Secrets Manager, AWS SSM Parameter Store,
// HashiCorp Vault, a SQLite-backed local store for development, a TTL cache
// wrapper, and a no-op provider.
//
// A provider returns a flat or nested mapping of secret values for one
// environment. Retrieval failures are never treated as "no secrets": they
// surface as a RetrievalError and fail the load that requested them.
package secrets
