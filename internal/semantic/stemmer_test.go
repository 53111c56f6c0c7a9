package semantic

import "testing"

func TestStem(t *testing.T) {
	s := NewStemmer(3)
	tests := map[string]string{
		"healing": "heal",
		"heals":   "heal",
		"running": "run",
	}
	for in, want := range tests {
		if got := s.Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStemMinLengthAndExclusions(t *testing.T) {
	s := NewStemmer(5, "Heals")
	if got := s.Stem("runs"); got != "runs" {
		t.Errorf("Short word should pass through, got %q", got)
	}
	if got := s.Stem("heals"); got != "heals" {
		t.Errorf("Excluded word should pass through, got %q", got)
	}
	if got := s.Stem("healing"); got != "heal" {
		t.Errorf("Expected heal, got %q", got)
	}
}

func TestStemAllDedup(t *testing.T) {
	s := NewStemmer(3)
	got := s.StemAll([]string{"healing", "word", "heals"})
	if len(got) != 2 || got[0] != "heal" || got[1] != "word" {
		t.Errorf("Unexpected stems: %v", got)
	}
	if !s.SameStem("healing", "heals") {
		t.Error("healing and heals should share a stem")
	}
}
