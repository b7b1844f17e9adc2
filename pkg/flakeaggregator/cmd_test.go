package flakeaggregator

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSubcommands(t *testing.T) {
	cmd := NewFlakeAggregatorCommand()
	for _, name := range []string{"list-failures", "diff-build"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("expected subcommand %s, got %v (%v)", name, sub, err)
		}
	}
}

func TestLogLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())

	cmd := NewFlakeAggregatorCommand()
	if err := cmd.PersistentFlags().Set("log-level", "debug"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := cmd.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logrus.GetLevel())
	}

	if err := cmd.PersistentFlags().Set("log-level", "chatty"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := cmd.PersistentPreRunE(cmd, nil); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
