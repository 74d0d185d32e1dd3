package semverx

import "testing"

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"1.0.0":        true,
		"1.2.3-alpha":  true,
		"1.2.3+build1": true,
		"not-a-version": false,
		"":             false,
	}
	for v, want := range cases {
		if got := Valid(v); got != want {
			t.Errorf("Valid(%q) = %v, want %v", v, got, want)
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	// SemVer 2.0 pre-release ordering: 1.0.0-alpha < 1.0.0.
	if !Less("1.0.0-alpha", "1.0.0") {
		t.Error("expected 1.0.0-alpha < 1.0.0")
	}
	if !Less("1.0.0", "2.0.0") {
		t.Error("expected 1.0.0 < 2.0.0")
	}
	if Compare("1.0.0", "1.0.0") != 0 {
		t.Error("expected 1.0.0 == 1.0.0")
	}
}

func TestSort(t *testing.T) {
	versions := []string{"2.0.0", "3.0.0", "1.0.0"}
	Sort(versions)
	want := []string{"1.0.0", "2.0.0", "3.0.0"}
	for i := range want {
		if versions[i] != want[i] {
			t.Fatalf("Sort() = %v, want %v", versions, want)
		}
	}
}

func TestHighest(t *testing.T) {
	versions := []string{"1.0.0", "3.0.0", "2.0.0"}
	i := Highest(versions)
	if versions[i] != "3.0.0" {
		t.Errorf("Highest() = %q, want 3.0.0", versions[i])
	}
}
