package dotenv

import (
	"testing"
)

func TestVarsOrder(t *testing.T) {
	v := NewVars()
	v.Set("C", "3")
	v.Set("A", "1")
	v.Set("B", "2")

	keys := v.Keys()
	want := []string{"C", "A", "B"}
	if len(keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestVarsOverwriteKeepsPosition(t *testing.T) {
	v := NewVars()
	v.Set("A", "1")
	v.Set("B", "2")
	v.Set("A", "updated")

	if v.Len() != 2 {
		t.Errorf("Len = %d, want 2", v.Len())
	}
	if got, _ := v.Get("A"); got != "updated" {
		t.Errorf("A = %q, want updated", got)
	}
	if keys := v.Keys(); keys[0] != "A" {
		t.Errorf("Keys[0] = %q, want A", keys[0])
	}
}

func TestVarsMapIsCopy(t *testing.T) {
	v := NewVars()
	v.Set("A", "1")

	m := v.Map()
	m["A"] = "mutated"
	m["B"] = "added"

	if got, _ := v.Get("A"); got != "1" {
		t.Errorf("A = %q, want 1 after mutating the copy", got)
	}
	if v.Has("B") {
		t.Error("mutating the copy must not add keys")
	}
}

func TestVarsGetMissing(t *testing.T) {
	v := NewVars()
	if _, ok := v.Get("NOPE"); ok {
		t.Error("Get on missing key reported ok")
	}
	if v.Has("NOPE") {
		t.Error("Has on missing key reported true")
	}
}
