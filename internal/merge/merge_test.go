package merge_test

import (
	"reflect"
	"testing"

	"strata/internal/merge"
)

func TestDeepMergesNestedMaps(t *testing.T) {
	a := merge.Map{"x": 1, "y": merge.Map{"a": 1}}
	b := merge.Map{"y": merge.Map{"b": 2}, "z": 3}

	out := merge.Deep(a, b)

	if out["x"] != 1 || out["z"] != 3 {
		t.Fatalf("unexpected top-level values: %#v", out)
	}
	y := out["y"].(merge.Map)
	if y["a"] != 1 || y["b"] != 2 {
		t.Fatalf("nested maps should merge key-wise: %#v", y)
	}
}

func TestDeepReplacesScalarsAndSequences(t *testing.T) {
	a := merge.Map{
		"hosts": []any{"a", "b"},
		"db":    merge.Map{"host": "localhost"},
	}
	b := merge.Map{
		"hosts": []any{"c"},
		"db":    "sqlite",
	}

	out := merge.Deep(a, b)

	if !reflect.DeepEqual(out["hosts"], []any{"c"}) {
		t.Fatalf("sequences must replace wholesale, got %#v", out["hosts"])
	}
	if out["db"] != "sqlite" {
		t.Fatalf("map-vs-scalar mismatch must take higher value, got %#v", out["db"])
	}
}

func TestDeepDoesNotMutateInputs(t *testing.T) {
	a := merge.Map{"db": merge.Map{"host": "localhost", "port": 5432}}
	b := merge.Map{"db": merge.Map{"port": 5433}}

	out := merge.Deep(a, b)
	out["db"].(merge.Map)["host"] = "mutated"

	if a["db"].(merge.Map)["host"] != "localhost" {
		t.Fatal("Deep leaked a reference into the lower input")
	}
	if b["db"].(merge.Map)["port"] != 5433 {
		t.Fatal("Deep leaked a reference into the higher input")
	}
}

func TestLayersFoldInOrder(t *testing.T) {
	base := merge.Map{"db": merge.Map{"host": "localhost", "port": 5432}}
	env := merge.Map{"db": merge.Map{"port": 5433}}

	out := merge.Layers(base, env)

	db := out["db"].(merge.Map)
	if db["host"] != "localhost" || db["port"] != 5433 {
		t.Fatalf("unexpected merged db block: %#v", db)
	}
}

func TestLayersWithNilAndEmpty(t *testing.T) {
	out := merge.Layers(nil, merge.Map{}, merge.Map{"a": 1})
	if !reflect.DeepEqual(out, merge.Map{"a": 1}) {
		t.Fatalf("unexpected result: %#v", out)
	}
}
