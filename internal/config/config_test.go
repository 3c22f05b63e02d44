package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port != 20253 {
		t.Fatalf("unexpected default port %d", cfg.Server.Port)
	}
	if cfg.Planning.Centre == "" || cfg.Planning.AnneeFormation == "" {
		t.Fatalf("planning defaults missing: %+v", cfg.Planning)
	}
	if !cfg.Planning.Force25To26 {
		t.Fatalf("25h->26h rule should default to on")
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	t.Parallel()

	cases := []struct {
		toml string
		want bool
	}{
		{"[server]\nport = 8080\n", true},
		{"[server]\ndev_mode = true\n", false},
		{"[planning]\ncentre = \"CFP\"\n", false},
		{"pas du toml", false},
	}
	for _, c := range cases {
		if got := isPortSpecifiedInToml([]byte(c.toml)); got != c.want {
			t.Fatalf("isPortSpecifiedInToml(%q) = %v, want %v", c.toml, got, c.want)
		}
	}
}
