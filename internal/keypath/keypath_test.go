package keypath_test

import (
	"errors"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"strata/internal/keypath"
)

func TestSplitFoldsAndSplitsOnSeparator(t *testing.T) {
	path, err := keypath.Split("DB__HOST", "__")
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if !reflect.DeepEqual(path, []string{"db", "host"}) {
		t.Fatalf("unexpected path: %v", path)
	}
}

func TestSplitPreservesSingleUnderscores(t *testing.T) {
	path, err := keypath.Split("FEATURE_FLAGS__MAX_RETRIES", "__")
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if !reflect.DeepEqual(path, []string{"feature_flags", "max_retries"}) {
		t.Fatalf("unexpected path: %v", path)
	}
}

func TestSplitRejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{"", "__DB", "DB__", "DB____HOST"} {
		_, err := keypath.Split(key, "__")
		var malformed *keypath.MalformedKeyError
		if !errors.As(err, &malformed) {
			t.Fatalf("Split(%q) = %v, want MalformedKeyError", key, err)
		}
	}
}

func TestSetAtPathCreatesIntermediateMaps(t *testing.T) {
	root := map[string]any{}
	if err := keypath.SetAtPath(root, []string{"db", "pool", "size"}, "10", "DB__POOL__SIZE"); err != nil {
		t.Fatalf("SetAtPath returned error: %v", err)
	}
	want := map[string]any{"db": map[string]any{"pool": map[string]any{"size": "10"}}}
	if !reflect.DeepEqual(root, want) {
		t.Fatalf("unexpected structure: %#v", root)
	}
}

func TestSetAtPathReportsScalarCollision(t *testing.T) {
	root := map[string]any{"db": "sqlite"}
	err := keypath.SetAtPath(root, []string{"db", "host"}, "localhost", "DB__HOST")
	var conflict *keypath.PathConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected PathConflictError, got %v", err)
	}
	if conflict.Key != "DB__HOST" {
		t.Fatalf("conflict should name the offending key, got %q", conflict.Key)
	}
}

func TestUnflattenIsDeterministic(t *testing.T) {
	flat := map[string]string{
		"DB__HOST":  "localhost",
		"DB__PORT":  "5432",
		"LOG_LEVEL": "debug",
	}
	first, err := keypath.Unflatten(flat, "__")
	if err != nil {
		t.Fatalf("Unflatten returned error: %v", err)
	}
	second, err := keypath.Unflatten(flat, "__")
	if err != nil {
		t.Fatalf("Unflatten returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Unflatten is not deterministic")
	}
	want := map[string]any{
		"db":        map[string]any{"host": "localhost", "port": "5432"},
		"log_level": "debug",
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("unexpected mapping: %#v", first)
	}
}

func TestUnflattenConflictWithinOneSource(t *testing.T) {
	flat := map[string]string{
		"DB":       "sqlite",
		"DB__HOST": "localhost",
	}
	_, err := keypath.Unflatten(flat, "__")
	var conflict *keypath.PathConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected PathConflictError, got %v", err)
	}
}

// segment generates lowercase separator-free path segments.
func segment() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z][a-z0-9_]{0,7}`).Filter(func(s string) bool {
		return !containsSeparator(s)
	})
}

func containsSeparator(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '_' && s[i+1] == '_' {
			return true
		}
	}
	return false
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flat := rapid.MapOfN(
			rapid.Custom(func(t *rapid.T) string {
				depth := rapid.IntRange(1, 3).Draw(t, "depth")
				path := make([]string, depth)
				for i := range path {
					path[i] = segment().Draw(t, "seg")
				}
				return keypath.Join(path, "__")
			}),
			rapid.StringMatching(`[a-zA-Z0-9:/.-]{0,12}`),
			0, 8,
		).Draw(t, "flat")

		nested, err := keypath.Unflatten(flat, "__")
		if err != nil {
			// Random keys may legitimately collide (a__b plus a__b__c);
			// the property only covers conflict-free inputs.
			var conflict *keypath.PathConflictError
			if errors.As(err, &conflict) {
				return
			}
			t.Fatalf("Unflatten returned error: %v", err)
		}
		back := keypath.Flatten(nested, "__")
		if !reflect.DeepEqual(back, flat) {
			t.Fatalf("round trip mismatch: %#v != %#v", back, flat)
		}
	})
}
