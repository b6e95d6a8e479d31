package runner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGroup_RunsInAscendingPriorityOrder(t *testing.T) {
	g := NewGroup("ordering")

	var executed []string
	record := func(name string) Case {
		return func(t *testing.T) { executed = append(executed, name) }
	}

	g.Add("delete category", 22, record("delete category"))
	g.Add("login", 10, record("login"))
	g.Add("edit category", 21, record("edit category"))
	g.Add("create category", 20, record("create category"))

	require.True(t, g.Run(t))
	assert.Equal(t, []string{"login", "create category", "edit category", "delete category"}, executed)
}

func TestGroup_TiesRunInRegistrationOrder(t *testing.T) {
	g := NewGroup("ties")

	var executed []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		g.Add(name, 5, func(t *testing.T) { executed = append(executed, name) })
	}

	require.True(t, g.Run(t))
	assert.Equal(t, []string{"a", "b", "c"}, executed)
}

func TestGroup_ContinuesPastFailuresAndRecordsThem(t *testing.T) {
	g := NewGroup("failures")

	var executed []string
	g.Add("first", 1, func(t *testing.T) { executed = append(executed, "first") })
	g.Add("second", 2, func(t *testing.T) { executed = append(executed, "second") })
	g.Add("third", 3, func(t *testing.T) { executed = append(executed, "third") })

	// Drive through the executor seam so the simulated failure does not
	// fail a real subtest.
	allPassed := g.run(func(name string, fn Case) bool {
		fn(t)
		return name != "second"
	})

	assert.False(t, allPassed)
	assert.Equal(t, []string{"first", "second", "third"}, executed)
	assert.False(t, g.Failed("first"))
	assert.True(t, g.Failed("second"))
	assert.False(t, g.Failed("third"))
}

func TestGroup_RequirePriorSkipsDependents(t *testing.T) {
	g := NewGroup("deps")
	g.failed["create wallet"] = true

	ran := false
	g.Add("edit wallet", 31, func(t *testing.T) {
		g.RequirePrior(t, "create wallet")
		ran = true
	})
	require.True(t, g.Run(t)) // skip counts as pass
	assert.False(t, ran, "dependent case body must not run after prerequisite failure")
}

func TestGroup_OrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := NewGroup("prop")
		n := rapid.IntRange(0, 30).Draw(t, "n")

		priorities := make(map[string]int, n)
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("case-%02d", i)
			p := rapid.IntRange(-5, 5).Draw(t, name)
			priorities[name] = p
			g.Add(name, p, func(t *testing.T) {})
		}

		order := g.Order()
		if len(order) != n {
			t.Fatalf("order length: got=%d want=%d", len(order), n)
		}
		for i := 1; i < len(order); i++ {
			prev, cur := priorities[order[i-1]], priorities[order[i]]
			if prev > cur {
				t.Fatalf("priority inversion at %d: %s(%d) before %s(%d)",
					i, order[i-1], prev, order[i], cur)
			}
			if prev == cur && order[i-1] >= order[i] {
				t.Fatalf("unstable tie order at %d: %s before %s", i, order[i-1], order[i])
			}
		}
	})
}
