package cache

import "testing"

func TestFingerprintDeterminism(t *testing.T) {
	a := Fingerprint("Hello", "short", "")
	b := Fingerprint("Hello", "short", "")
	if a != b {
		t.Fatalf("equal inputs must yield equal keys: %q vs %q", a, b)
	}
}

func TestFingerprintDistinguishesInputs(t *testing.T) {
	base := Fingerprint("Hello", "short", "")

	if Fingerprint("Hello!", "short", "") == base {
		t.Fatalf("different prompt must change the key")
	}
	if Fingerprint("Hello", "long", "") == base {
		t.Fatalf("different action must change the key")
	}
	if Fingerprint("Hello", "short", "abc123") == base {
		t.Fatalf("attached file hash must change the key")
	}
}

func TestFingerprintNormalizesPrompt(t *testing.T) {
	if Fingerprint("  Hello  ", "short", "") != Fingerprint("Hello", "short", "") {
		t.Fatalf("prompt whitespace must not change the key")
	}
}
