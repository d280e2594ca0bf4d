package redact_test

import (
	"encoding/json"
	"strings"
	"testing"

	"strata/internal/merge"
	"strata/internal/redact"
)

func TestApplyMasksDefaultPatterns(t *testing.T) {
	m := merge.Map{
		"db": merge.Map{
			"host":     "localhost",
			"password": "supersecret",
		},
		"api_token": "tok-123",
		"debug":     true,
	}

	out := redact.Apply(m)

	db := out["db"].(merge.Map)
	if db["password"] != redact.Mask {
		t.Fatalf("password not masked: %#v", db["password"])
	}
	if out["api_token"] != redact.Mask {
		t.Fatalf("token key not masked: %#v", out["api_token"])
	}
	if db["host"] != "localhost" || out["debug"] != true {
		t.Fatal("non-secret values must pass through unchanged")
	}
}

func TestApplyNeverLeaksSecretInSerializedForm(t *testing.T) {
	m := merge.Map{"db": merge.Map{"password": "supersecret"}}

	out := redact.Apply(m)

	serialized, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(serialized), "supersecret") {
		t.Fatalf("redacted output leaked the secret: %s", serialized)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	m := merge.Map{"db": merge.Map{"password": "supersecret"}}

	_ = redact.Apply(m)

	if m["db"].(merge.Map)["password"] != "supersecret" {
		t.Fatal("Apply mutated its input")
	}
}

func TestExplicitPathsMaskNonMatchingKeys(t *testing.T) {
	m := merge.Map{"db": merge.Map{"dsn": "postgres://u:p@host/db"}}

	out := redact.New(redact.DefaultPatterns, []string{"db.dsn"}).Apply(m)

	if out["db"].(merge.Map)["dsn"] != redact.Mask {
		t.Fatalf("explicit path not masked: %#v", out)
	}
}

func TestSecretsInsideSequencesAreMasked(t *testing.T) {
	m := merge.Map{
		"accounts": []any{
			merge.Map{"name": "a", "password": "hunter2"},
		},
	}

	out := redact.Apply(m)

	first := out["accounts"].([]any)[0].(merge.Map)
	if first["password"] != redact.Mask {
		t.Fatalf("sequence element not masked: %#v", first)
	}
}
