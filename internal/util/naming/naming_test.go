package naming

import "testing"

func TestNames(t *testing.T) {
	t.Parallel()
	if got := Lease("adv-01"); got != "adv-01-lease" {
		t.Errorf("Lease: got %q", got)
	}
	if got := Network("sdr-02"); got != "sdr-02-net" {
		t.Errorf("Network: got %q", got)
	}
	if got := Keypair("exp1"); got != "exp1-key" {
		t.Errorf("Keypair: got %q", got)
	}
	if got := Container("exp1", "gnb"); got != "exp1-gnb" {
		t.Errorf("Container: got %q", got)
	}
}

func TestRandomIsUnique(t *testing.T) {
	t.Parallel()
	a, b := Random(), Random()
	if a == b {
		t.Errorf("expected distinct suffixes, got %q twice", a)
	}
	if len(a) != 8 {
		t.Errorf("expected 8-char suffix, got %q", a)
	}
}
