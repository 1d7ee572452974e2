package runner

import (
	"strings"
	"testing"
)

func TestStyleCatalog(t *testing.T) {
	styles := Styles()
	if len(styles) == 0 || styles[0].ID != DefaultStyleID || styles[0].Cost != 0 {
		t.Fatalf("first style = %+v", styles[0])
	}

	seen := make(map[string]bool)
	for _, s := range styles {
		if seen[s.ID] {
			t.Errorf("duplicate style %q", s.ID)
		}
		seen[s.ID] = true
		if s.Name == "" || s.Cost < 0 {
			t.Errorf("style %q: name=%q cost=%d", s.ID, s.Name, s.Cost)
		}
		for _, c := range []string{s.Colors.Core, s.Colors.Glow, s.Colors.Fade, s.Colors.Particle} {
			if !strings.HasPrefix(c, "#") || len(c) != 7 {
				t.Errorf("style %q: bad color %q", s.ID, c)
			}
		}
		got, ok := StyleByID(s.ID)
		if !ok || got != s {
			t.Errorf("StyleByID(%q) = %+v, %v", s.ID, got, ok)
		}
	}

	if _, ok := StyleByID("nope"); ok {
		t.Error("unknown style found")
	}
}

func TestStylesReturnsCopy(t *testing.T) {
	s := Styles()
	s[0].Name = "changed"
	if DefaultStyle().Name == "changed" {
		t.Error("catalog mutated through Styles")
	}
}
