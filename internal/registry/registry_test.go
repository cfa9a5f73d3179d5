package registry

import (
	"testing"

	"github.com/vovakirdan/frameloop/internal/loop"
)

func TestBuiltinStrategiesRegistered(t *testing.T) {
	for _, name := range []string{"variable", "fixed", "adaptive", "priority"} {
		if !Exists(name) {
			t.Errorf("strategy %q should be registered", name)
		}
	}
	if Exists("nope") {
		t.Error("unknown strategy should not exist")
	}
}

func TestListSorted(t *testing.T) {
	infos := List()
	if len(infos) < 4 {
		t.Fatalf("List() returned %d strategies, want at least 4", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Errorf("List() not sorted: %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}
}

func TestCreate(t *testing.T) {
	l, err := Create("fixed", loop.Options{})
	if err != nil {
		t.Fatalf("Create(fixed) failed: %v", err)
	}
	if _, ok := l.(*loop.FixedLoop); !ok {
		t.Errorf("Create(fixed) returned %T, want *loop.FixedLoop", l)
	}

	if _, err := Create("unknown", loop.Options{}); err == nil {
		t.Error("Create() with unknown name should fail")
	}
}

func TestCreatePropagatesOptionErrors(t *testing.T) {
	if _, err := Create("adaptive", loop.Options{TargetFPS: -1}); err == nil {
		t.Error("invalid options should be rejected through the factory")
	}
}
