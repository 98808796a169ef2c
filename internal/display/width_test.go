package display

import "testing"

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Corgi", 5},
		{"柯基犬", 6},
		{"柯基犬 / Corgi", 14},
		{"Ｃ", 2},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.in); got != tt.want {
			t.Fatalf("StringWidth(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Golden Retriever", 6); got != "Golden" {
		t.Fatalf("expected Golden, got %q", got)
	}
	if got := Truncate("柯基犬", 5); got != "柯基" {
		t.Fatalf("expected wide chars kept whole, got %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestTrimLastChar(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"ab", "a"},
		{"X犬", "X"},
		{"é", ""},
		{"a😀", "a"},
		{"a\xe7\x8a", "a\xe7"},
	}
	for _, tt := range tests {
		if got := TrimLastChar(tt.in); got != tt.want {
			t.Fatalf("TrimLastChar(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestKeyClasses(t *testing.T) {
	if !Key('a').Printable() || !Key(0xE7).Printable() {
		t.Fatal("expected ASCII and lead bytes printable")
	}
	if Key(0x7F).Printable() || Key('\t').Printable() || KeyEnter.Printable() {
		t.Fatal("expected control keys not printable")
	}
	if KeyBackspace.Unit() {
		t.Fatal("expected out-of-band key not to be a unit")
	}
}
