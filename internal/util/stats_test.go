package util

import "testing"

func TestFormatStats(t *testing.T) {
	prev := Snapshot{Sent: 10, Received: 4, Malformed: 1, Dropped: 0}
	cur := Snapshot{Sent: 15, Received: 4, Malformed: 3, Dropped: 2}

	want := "Out:    5 msg | In:    0 msg | Malformed:   2 | Dropped:   2"
	if got := formatStats(prev, cur); got != want {
		t.Errorf("formatStats:\n got %q\nwant %q", got, want)
	}
}

func TestSetLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", " warn ", "error"} {
		if !SetLevel(name) {
			t.Errorf("SetLevel(%q) rejected a known level", name)
		}
	}
	if SetLevel("verbose") {
		t.Error("SetLevel accepted an unknown level")
	}
	SetLevel("info")
}
