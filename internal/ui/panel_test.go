package ui

import (
	"strings"
	"testing"
)

func TestPanelLookup(t *testing.T) {
	p := NewPanel(NewLabel("bitrate"), NewCheckbox("stream_toggle"))

	if _, ok := p.ElementByID("bitrate"); !ok {
		t.Fatal("bitrate not found")
	}
	if _, ok := p.ElementByID("missing"); ok {
		t.Fatal("unexpected element")
	}

	// Re-adding keeps a single row.
	p.Add(NewInput("bitrate"))
	if n := len(p.Rows()); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	el, _ := p.ElementByID("bitrate")
	if _, ok := el.(*Input); !ok {
		t.Fatalf("expected replacement input, got %T", el)
	}
}

func TestPanelToggleNotifies(t *testing.T) {
	p := NewPanel(NewCheckbox("stream_toggle"))

	var seen []bool
	p.OnChange("stream_toggle", func(el Element) {
		seen = append(seen, el.(Checkable).Checked())
	})
	calls := 0
	p.OnChange("stream_toggle", func(Element) { calls++ })

	if err := p.Toggle("stream_toggle"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := p.Toggle("stream_toggle"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("unexpected states: %v", seen)
	}
	if calls != 2 {
		t.Errorf("second listener called %d times, want 2", calls)
	}
}

func TestPanelInputErrors(t *testing.T) {
	p := NewPanel(NewLabel("bitrate"), NewCheckbox("tc-enabled"))

	if err := p.Toggle("bitrate"); err == nil {
		t.Error("toggling a label should fail")
	}
	if err := p.Type("tc-enabled", "x"); err == nil {
		t.Error("typing into a checkbox should fail")
	}
	if err := p.Toggle("nope"); err == nil {
		t.Error("toggling a missing element should fail")
	}
}

func TestPanelRender(t *testing.T) {
	p := NewPanel(NewLabel("srt-uri"), NewCheckbox("tc-enabled"))
	if err := p.Type("srt-uri", "srt://10.0.0.1:7001"); err != nil {
		t.Fatalf("Type: %v", err)
	}

	out, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"srt-uri", "srt://10.0.0.1:7001", "tc-enabled", "checkbox", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}
