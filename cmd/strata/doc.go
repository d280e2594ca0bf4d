// Command strata inspects and maintains layered configuration: dumping the
// merged view, validating against a settings model, generating schemas,
// scaffolds and docs, diffing schemas for breaking changes, watching a config
// directory, and seeding the local development secrets store.
package main
