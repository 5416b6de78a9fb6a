package edn

import (
	"strings"
	"testing"
)

func TestHashPreservesPushOrder(t *testing.T) {
	h := NewHash(4)
	h.Push("zeta", 1)
	h.Push("alpha", "two")
	h.Push("mid", true)

	got := String(h)
	want := `{:zeta 1 :alpha "two" :mid true}`
	if got != want {
		t.Fatalf("hash = %s, want %s", got, want)
	}
}

func TestNestedStructures(t *testing.T) {
	inner := NewHash(1)
	inner.Push("page", 3)

	v := NewVector(2)
	v.Push(inner)
	v.Push(nil)

	h := NewHash(2)
	h.Push("entries", v)

	got := String(h)
	want := `{:entries [{:page 3} nil]}`
	if got != want {
		t.Fatalf("nested = %s, want %s", got, want)
	}
}

func TestStringEscaping(t *testing.T) {
	h := NewHash(1)
	h.Push("title", "a \"b\"\nc\\d\x01")
	got := String(h)
	want := `{:title "a \"b\"\nc\\d"}`
	if got != want {
		t.Fatalf("escaped = %s, want %s", got, want)
	}
}

func TestFloatFormatting(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{12, "12.0"},
		{8.5, "8.5"},
		{0.25, "0.25"},
		{1e21, "1e+21"},
	}
	for _, tc := range cases {
		got := formatFloat(tc.in)
		if got != tc.want {
			t.Errorf("formatFloat(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestEncodeStreams(t *testing.T) {
	var sb strings.Builder
	v := NewVector(3)
	v.Push(1)
	v.Push(2.5)
	v.Push("x")
	if err := Encode(&sb, v); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if sb.String() != `[1 2.5 "x"]` {
		t.Fatalf("vector = %s", sb.String())
	}
}

func TestEmptyCollections(t *testing.T) {
	if got := String(NewHash(0)); got != "{}" {
		t.Fatalf("empty hash = %s", got)
	}
	if got := String(NewVector(0)); got != "[]" {
		t.Fatalf("empty vector = %s", got)
	}
}
