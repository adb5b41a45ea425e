package util

import "testing"

func TestFingerprint(t *testing.T) {
	body := "Senior Go engineer with five years of backend experience."
	got := Fingerprint(body)
	if got != Fingerprint(body) {
		t.Fatalf("expected stable fingerprint, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 hex characters, got %d", len(got))
	}
	if Fingerprint("a") == Fingerprint("b") {
		t.Fatalf("expected distinct fingerprints for distinct bodies")
	}
}

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName("  resume.pdf ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "resume.pdf" {
		t.Fatalf("expected resume.pdf, got %q", got)
	}

	got, err = SanitizeFileName("dir/sub\\resume.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "dir_sub_resume.pdf" {
		t.Fatalf("expected separators replaced, got %q", got)
	}

	if _, err := SanitizeFileName("../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	got := SanitizeErrorMessage("line one\nline two\r\n  spaced   out  ")
	if got != "line one line two spaced out" {
		t.Fatalf("expected flattened message, got %q", got)
	}

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}
	if got := SanitizeErrorMessage(string(long)); len(got) != 500 {
		t.Fatalf("expected 500-char cap, got %d", len(got))
	}
}
