package charset

import (
	"strings"
	"testing"
)

func TestNamesEqualIgnoresPunctuationAndCase(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"UTF-8", "utf8", true},
		{"UTF-8", "u.t.f.8", true},
		{"ISO-8859-1", "iso88591", true},
		{"ISO-8859-1", "iso-8859-2", false},
		{"Shift_JIS", "shift-jis", true},
		{"", "", true},
		{"a", "", false},
	}

	for _, tt := range tests {
		if got := namesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("namesEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizedHashAgreesWithNamesEqual(t *testing.T) {
	pairs := [][2]string{
		{"UTF-8", "utf8"},
		{"windows-1252", "Windows_1252"},
		{"EUC-JP", "euc.jp"},
	}

	for _, p := range pairs {
		ha := normalizedHash(p[0], defaultTableSize)
		hb := normalizedHash(p[1], defaultTableSize)
		if ha != hb {
			t.Errorf("normalizedHash(%q) = %d but normalizedHash(%q) = %d; names compare equal so hashes must match", p[0], ha, p[1], hb)
		}
	}
}

func TestNewDefaultAliasTableCanonicalisesKnownNames(t *testing.T) {
	table, err := NewDefaultAliasTable()
	if err != nil {
		t.Fatalf("NewDefaultAliasTable() error = %v", err)
	}

	tests := []struct {
		name    string
		wantMIB uint16
	}{
		{"utf-8", MIBUTF8},
		{"UTF8", MIBUTF8},
		{"latin1", 4},
		{"cp1252", 2252},
		{"shift-jis", 17},
		{"big-5", 2026},
	}

	for _, tt := range tests {
		cn, ok := table.Canonicalise(tt.name)
		if !ok {
			t.Errorf("Canonicalise(%q): not found", tt.name)
			continue
		}
		if cn.MIB != tt.wantMIB {
			t.Errorf("Canonicalise(%q).MIB = %d, want %d", tt.name, cn.MIB, tt.wantMIB)
		}
	}

	if _, ok := table.Canonicalise("not-a-real-encoding"); ok {
		t.Error("Canonicalise(unknown name) = ok, want not found")
	}
}

func TestAliasTableIsUnicode(t *testing.T) {
	table, err := NewDefaultAliasTable()
	if err != nil {
		t.Fatalf("NewDefaultAliasTable() error = %v", err)
	}

	if !table.IsUnicode(MIBUTF8) {
		t.Error("IsUnicode(MIBUTF8) = false, want true")
	}
	if table.IsUnicode(4) { // ISO-8859-1
		t.Error("IsUnicode(ISO-8859-1) = true, want false")
	}
}

func TestAliasTableDuplicateCanonicalUpdatesInPlace(t *testing.T) {
	data := "Foo 1\nFoo 2 bar\n"
	table, err := NewAliasTableFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewAliasTableFromReader() error = %v", err)
	}

	cn, ok := table.Canonicalise("Foo")
	if !ok {
		t.Fatal("Canonicalise(Foo): not found")
	}
	if cn.MIB != 2 {
		t.Errorf("Canonicalise(Foo).MIB = %d, want 2 (later registration wins)", cn.MIB)
	}

	barCn, ok := table.Canonicalise("bar")
	if !ok {
		t.Fatal("Canonicalise(bar): not found")
	}
	if barCn != cn {
		t.Error("alias bar should resolve to the same *CanonicalName pointer as Foo")
	}
}

// TestAliasEquivalence is spec.md §8 scenario 5: several spellings of the
// same name must all resolve to one MIB, and that MIB must map back to
// the alias file's chosen canonical spelling.
func TestAliasEquivalence(t *testing.T) {
	table, err := NewDefaultAliasTable()
	if err != nil {
		t.Fatalf("NewDefaultAliasTable() error = %v", err)
	}

	a := table.MIBFromName("u.t.f.8")
	b := table.MIBFromName("UTF8")
	c := table.MIBFromName("utf-8")

	if a == 0 || a != b || b != c {
		t.Fatalf("MIBFromName disagreed: %d, %d, %d", a, b, c)
	}

	name, ok := table.NameFromMIB(a)
	if !ok || name != "UTF-8" {
		t.Fatalf("NameFromMIB(%d) = (%q, %v), want (\"UTF-8\", true)", a, name, ok)
	}
}

func TestAliasFileToleratesMalformedLines(t *testing.T) {
	data := "# comment\n\nBadLine\nGood 42 g\n"
	table, err := NewAliasTableFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewAliasTableFromReader() error = %v", err)
	}

	if cn, ok := table.Canonicalise("Good"); !ok || cn.MIB != 42 {
		t.Errorf("Canonicalise(Good) = %v, %v; want MIB 42", cn, ok)
	}
}
