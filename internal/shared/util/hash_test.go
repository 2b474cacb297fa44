package util

import (
	"errors"
	"strings"
	"testing"
)

func TestDigestSeparatesParts(t *testing.T) {
	if Digest("ab", "c") == Digest("a", "bc") {
		t.Fatal("expected part boundaries to change the digest")
	}
	if Digest("x", "y") != Digest("x", "y") {
		t.Fatal("expected stable digest")
	}
	if len(Digest("x")) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(Digest("x")))
	}
}

func TestOwnerPrefix(t *testing.T) {
	got := OwnerPrefix("guest:abc-123")
	if got != OwnerPrefix("guest:abc-123") {
		t.Fatalf("expected stable prefix, got %s", got)
	}
	if got == OwnerPrefix("user-1") {
		t.Fatal("expected distinct owners to get distinct prefixes")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("prefix contains non-hex character: %c", ch)
		}
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  cv/2024\\final.docx ", want: "cv_2024_final.docx"},
		{in: "bad\x00name\n.txt", want: "badname.txt"},
		{in: "../etc/passwd", err: true},
		{in: "   ", err: true},
		{in: "...", err: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("%q: expected ErrInvalidFileName, got %q (%v)", tc.in, got, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %q (%v), want %q", tc.in, got, err, tc.want)
		}
	}

	long, err := SanitizeFileName(strings.Repeat("a", 300) + ".pdf")
	if err != nil {
		t.Fatalf("long name: %v", err)
	}
	if len([]rune(long)) != maxFileNameRunes || !strings.HasSuffix(long, ".pdf") {
		t.Fatalf("expected truncated name with extension, got %d runes %q", len([]rune(long)), long[len(long)-8:])
	}
}
