package jsondoc

import "testing"

func TestParsePreservesObjectKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zeta": 1, "alpha": 2, "mid": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"zeta", "alpha", "mid"}
	if len(v.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(v.Fields))
	}
	for i, key := range want {
		if v.Fields[i].Key != key {
			t.Fatalf("expected field %d to be %q, got %q", i, key, v.Fields[i].Key)
		}
	}
}

func TestParseDuplicateKeyKeepsLastValue(t *testing.T) {
	v, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(v.Fields))
	}
	if got := v.Fields[0].Value.String(); got != "3" {
		t.Fatalf("expected duplicate key to hold 3, got %q", got)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a":}`, `[1,]`, `{} {}`} {
		if _, err := Parse([]byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestValueString(t *testing.T) {
	v, err := Parse([]byte(`{"s":"x","n":1.50,"i":42,"b":true,"z":null,"a":[1,2],"o":{"k":1}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := map[string]string{
		"s": "x",
		"n": "1.5",
		"i": "42",
		"b": "true",
		"z": "null",
		"a": "Array(2)",
		"o": "Object(1)",
	}
	for key, want := range cases {
		field, ok := v.Get(key)
		if !ok {
			t.Fatalf("expected field %q", key)
		}
		if got := field.String(); got != want {
			t.Fatalf("expected %q for %s, got %q", want, key, got)
		}
	}
}

func TestLookup(t *testing.T) {
	v, err := Parse([]byte(`{"scripts":{"build":"tsc"},"files":["a",["b","c"]]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := map[string]string{
		"scripts.build": "tsc",
		"files[0]":      "a",
		"files[1][1]":   "c",
		"scripts":       "Object(1)",
	}
	for path, want := range cases {
		got, ok := v.Lookup(path)
		if !ok {
			t.Fatalf("expected %s to resolve", path)
		}
		if got.String() != want {
			t.Fatalf("expected %q at %s, got %q", want, path, got.String())
		}
	}
	for _, path := range []string{"scripts.test", "files[5]", "scripts.build.x"} {
		if _, ok := v.Lookup(path); ok {
			t.Fatalf("expected %s to be missing", path)
		}
	}
}

func TestLookupRootArray(t *testing.T) {
	v, err := Parse([]byte(`[{"name":"x"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.Lookup("[0].name")
	if !ok || got.String() != "x" {
		t.Fatalf("expected x, got %q (ok=%v)", got.String(), ok)
	}
}

func TestLookupUsesLastDuplicateValue(t *testing.T) {
	v, err := Parse([]byte(`{"scripts": {"build": "tsc", "build": "tsc -b"}, "list": [{"k": 1, "k": 2}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.Lookup("scripts.build")
	if !ok || got.String() != "tsc -b" {
		t.Fatalf("expected tsc -b, got %q (ok=%v)", got.String(), ok)
	}
	got, ok = v.Lookup("list[0].k")
	if !ok || got.String() != "2" {
		t.Fatalf("expected 2, got %q (ok=%v)", got.String(), ok)
	}
}

func TestLookupEscapesKeys(t *testing.T) {
	v, err := Parse([]byte(`{"scripts":{"test:*":"vitest","a?b":"x","x|y":"pipe"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := map[string]string{
		"scripts.test:*": "vitest",
		"scripts.a?b":    "x",
		"scripts.x|y":    "pipe",
	}
	for path, want := range cases {
		got, ok := v.Lookup(path)
		if !ok || got.String() != want {
			t.Fatalf("expected %q at %s, got %q (ok=%v)", want, path, got.String(), ok)
		}
	}
	for _, path := range []string{"", "scripts..x", "scripts.test:"} {
		if _, ok := v.Lookup(path); ok {
			t.Fatalf("expected %q to be missing", path)
		}
	}
}

func TestNumberStringMatchesJavaScript(t *testing.T) {
	cases := map[string]string{
		"1":                        "1",
		"1.50":                     "1.5",
		"-0":                       "0",
		"1e3":                      "1000",
		"0.000001":                 "0.000001",
		"1e-7":                     "1e-7",
		"1.5e-7":                   "1.5e-7",
		"1e21":                     "1e+21",
		"123456789012345678901234": "1.2345678901234568e+23",
		"12345678901234567890":     "12345678901234567000",
		"1e400":                    "Infinity",
		"-1e400":                   "-Infinity",
	}
	for literal, want := range cases {
		v, err := Parse([]byte(literal))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", literal, err)
		}
		if got := v.String(); got != want {
			t.Fatalf("expected %s to display as %q, got %q", literal, want, got)
		}
	}
}
