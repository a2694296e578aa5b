package migration

import "testing"

func TestNormalizeStripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("test('x', () => {})")...)
	got := Normalize(raw)
	if got.IsBinary {
		t.Fatal("IsBinary = true, want false")
	}
	if got.Text != "test('x', () => {})" {
		t.Fatalf("Text = %q, want BOM stripped", got.Text)
	}
	if len(got.Issues) != 1 {
		t.Fatalf("Issues = %v, want one entry", got.Issues)
	}
}

func TestNormalizeConvertsCRLF(t *testing.T) {
	got := Normalize([]byte("line1\r\nline2\r\n"))
	if got.Text != "line1\nline2\n" {
		t.Fatalf("Text = %q, want LF-only", got.Text)
	}
}

func TestNormalizeConvertsBareCR(t *testing.T) {
	got := Normalize([]byte("line1\rline2"))
	if got.Text != "line1\nline2" {
		t.Fatalf("Text = %q, want LF-only", got.Text)
	}
}

func TestNormalizeFlagsBinary(t *testing.T) {
	raw := []byte{0x00, 0x01, 0x02, 'a', 'b', 'c'}
	got := Normalize(raw)
	if !got.IsBinary {
		t.Fatal("IsBinary = false, want true")
	}
	if got.Text != "" {
		t.Fatalf("Text = %q, want empty for binary content", got.Text)
	}
}

func TestNormalizeLeavesCleanTextUntouched(t *testing.T) {
	src := "test('x', () => {\n  expect(1).toBe(1)\n})\n"
	got := Normalize([]byte(src))
	if got.Text != src {
		t.Fatalf("Text = %q, want unchanged", got.Text)
	}
	if len(got.Issues) != 0 {
		t.Fatalf("Issues = %v, want none", got.Issues)
	}
}
