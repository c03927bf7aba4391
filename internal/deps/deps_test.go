package deps

import "testing"

func TestCheckBinariesMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Metadata tool", Command: "retake-test-no-such-binary"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("nonexistent binary reported available")
	}
	if statuses[0].Detail == "" {
		t.Fatal("missing binary must carry a detail message")
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "Metadata tool"}})
	if statuses[0].Available {
		t.Fatal("empty command reported available")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("detail = %q", statuses[0].Detail)
	}
}

func TestCheckBinariesPresent(t *testing.T) {
	// /bin/sh resolution via PATH: "sh" exists on every supported platform.
	statuses := CheckBinaries([]Requirement{{Name: "Shell", Command: "sh"}})
	if !statuses[0].Available {
		t.Fatalf("sh not found: %s", statuses[0].Detail)
	}
}

func TestRequirementsUsesConfiguredBinary(t *testing.T) {
	reqs := Requirements("exiftool")
	if len(reqs) != 1 || reqs[0].Command != "exiftool" {
		t.Fatalf("Requirements = %+v", reqs)
	}
}
