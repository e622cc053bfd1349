package cli

import "testing"

func TestRootCommandWiring(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("CONFIG_PATH", "testdata/none.yaml")
	cmd := newRootCmd()

	for _, name := range []string{"start", "migrate", "seed"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (%v)", name, sub, err)
		}
	}
	if got := cmd.PersistentFlags().Lookup("port").DefValue; got != "9191" {
		t.Fatalf("expected PORT env as default, got %s", got)
	}
	if got := cmd.PersistentFlags().Lookup("config").DefValue; got != "testdata/none.yaml" {
		t.Fatalf("expected CONFIG_PATH env as default, got %s", got)
	}
	seed, _, _ := cmd.Find([]string{"seed"})
	if seed.Flags().Lookup("file") == nil {
		t.Fatalf("seed command is missing --file")
	}
}
