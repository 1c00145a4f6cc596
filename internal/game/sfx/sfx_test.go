package sfx

import "testing"

func TestRecorder(t *testing.T) {
	var r Recorder
	for _, name := range []string{Door, Step, Door} {
		r.Play(name)
	}

	tests := []struct {
		name string
		want int
	}{
		{Door, 2},
		{Step, 1},
		{Pistol, 0},
	}
	for _, tt := range tests {
		if got := r.Count(tt.name); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
	if len(r.Played) != 3 || r.Played[2] != Door {
		t.Errorf("Played = %v", r.Played)
	}
}

func TestAllUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range All {
		if name == "" || seen[name] {
			t.Errorf("duplicate or empty effect name %q", name)
		}
		seen[name] = true
	}

	var p Player = Nop{}
	p.Play(Door)
}
