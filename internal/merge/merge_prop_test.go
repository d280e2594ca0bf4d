package merge_test

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"strata/internal/merge"
)

// genMap draws small nested mappings with scalar, sequence, and map values.
func genMap() *rapid.Generator[merge.Map] {
	return genMapDepth(2)
}

func genMapDepth(depth int) *rapid.Generator[merge.Map] {
	key := rapid.StringMatching(`[a-e]`)
	scalar := rapid.OneOf(
		rapid.Int().AsAny(),
		rapid.StringMatching(`[a-z]{0,4}`).AsAny(),
		rapid.Bool().AsAny(),
	)
	value := scalar
	if depth > 0 {
		value = rapid.OneOf(
			scalar,
			rapid.SliceOfN(scalar, 0, 3).AsAny(),
			rapid.Custom(func(t *rapid.T) any {
				return any(genMapDepth(depth-1).Draw(t, "child"))
			}),
		)
	}
	return rapid.MapOfN(key, value, 0, 4)
}

func TestDeepDisjointKeysIsUnion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genMap().Draw(t, "a")
		b := genMap().Draw(t, "b")
		for k := range a {
			delete(b, k)
		}

		out := merge.Deep(a, b)

		if len(out) != len(a)+len(b) {
			t.Fatalf("union size mismatch: %d != %d + %d", len(out), len(a), len(b))
		}
		for k, v := range a {
			if !reflect.DeepEqual(out[k], v) {
				t.Fatalf("lower value lost for %q", k)
			}
		}
		for k, v := range b {
			if !reflect.DeepEqual(out[k], v) {
				t.Fatalf("higher value lost for %q", k)
			}
		}
	})
}

func TestDeepIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genMap().Draw(t, "a")
		b := genMap().Draw(t, "b")

		once := merge.Deep(a, b)
		twice := merge.Deep(once, b)

		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("merge not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
		}
	})
}

func TestDeepIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		layers := rapid.SliceOfN(genMap(), 1, 6).Draw(t, "layers")

		first := merge.Layers(layers...)
		second := merge.Layers(layers...)

		if !reflect.DeepEqual(first, second) {
			t.Fatal("same ordered layers produced different results")
		}
	})
}

func TestDeepHigherNonMapAlwaysWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genMap().Draw(t, "a")
		b := genMap().Draw(t, "b")

		out := merge.Deep(a, b)

		for k, v := range b {
			if _, isMap := v.(merge.Map); isMap {
				continue
			}
			if !reflect.DeepEqual(out[k], v) {
				t.Fatalf("non-map value from higher side lost for %q", k)
			}
		}
	})
}
