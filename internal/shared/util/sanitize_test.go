package util

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "report.pdf", want: "report.pdf"},
		{name: "traversal", in: "../../etc/passwd.pdf", want: "passwd.pdf"},
		{name: "absolute", in: "/var/tmp/file.pdf", want: "file.pdf"},
		{name: "windows separators", in: "..\\..\\boot.pdf", want: "boot.pdf"},
		{name: "special chars stripped", in: "my~file!@#.pdf", want: "myfile.pdf"},
		{name: "spaces kept", in: "annual report 2024.pdf", want: "annual report 2024.pdf"},
		{name: "unicode stripped", in: "résumé.pdf", want: "rsum.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.in); got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileNameTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeFileName(long)
	if len(got) != 254 {
		t.Fatalf("expected 254 chars (250 stem + .pdf), got %d", len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("expected extension preserved, got %q", got)
	}
}

func TestSanitizeFileNameNeverContainsSeparators(t *testing.T) {
	inputs := []string{"../x.pdf", "a/b/c.pdf", "..\\x.pdf", "/abs.pdf"}
	for _, in := range inputs {
		got := SanitizeFileName(in)
		if strings.ContainsAny(got, "/\\") || strings.Contains(got, "..") {
			t.Fatalf("SanitizeFileName(%q) = %q contains a path component", in, got)
		}
	}
}
