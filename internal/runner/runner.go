// Package runner executes a named group of test cases in strictly
// ascending priority order on a single goroutine. The cases share one
// fixture and mutate shared application state (a record created by one
// case is edited by the next), so sequential execution is a correctness
// requirement: the group never calls t.Parallel and a structural
// reordering would break the scenarios.
package runner

import (
	"sort"
	"testing"

	"github.com/spendwise/spendwise-e2e/internal/obs"
)

var logger = obs.Pkg("runner")

// Case is one registered test case body.
type Case func(t *testing.T)

type registration struct {
	name     string
	priority int
	seq      int // registration order, breaks priority ties
	fn       Case
}

// Group is an ordered, non-parallel collection of test cases.
type Group struct {
	name   string
	cases  []registration
	failed map[string]bool
}

// NewGroup creates an empty ordered group.
func NewGroup(name string) *Group {
	return &Group{name: name, failed: make(map[string]bool)}
}

// Add registers a case with its priority. Lower priorities run first;
// ties run in registration order.
func (g *Group) Add(name string, priority int, fn Case) {
	g.cases = append(g.cases, registration{
		name:     name,
		priority: priority,
		seq:      len(g.cases),
		fn:       fn,
	})
}

// Order returns the case names in execution order.
func (g *Group) Order() []string {
	ordered := g.sorted()
	names := make([]string, len(ordered))
	for i, c := range ordered {
		names[i] = c.name
	}
	return names
}

func (g *Group) sorted() []registration {
	ordered := make([]registration, len(g.cases))
	copy(ordered, g.cases)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].priority != ordered[j].priority {
			return ordered[i].priority < ordered[j].priority
		}
		return ordered[i].seq < ordered[j].seq
	})
	return ordered
}

// Run executes every case as a sequential subtest, continuing past
// failures so later independent cases still report. It returns true when
// all cases passed.
func (g *Group) Run(t *testing.T) bool {
	t.Helper()
	return g.run(func(name string, fn Case) bool {
		return t.Run(name, fn)
	})
}

// run drives the ordered execution through exec, which reports whether
// the case passed. Split out so failure bookkeeping is testable without
// failing a real subtest.
func (g *Group) run(exec func(name string, fn Case) bool) bool {
	allPassed := true
	for _, c := range g.sorted() {
		passed := exec(c.name, c.fn)
		if !passed {
			g.failed[c.name] = true
			allPassed = false
		}
		logger.Info("case finished", "group", g.name, "case", c.name, "priority", c.priority, "passed", passed)
	}
	return allPassed
}

// Failed reports whether a previously executed case failed.
func (g *Group) Failed(name string) bool {
	return g.failed[name]
}

// RequirePrior skips the current case when any named prerequisite case
// failed, since dependent state will be missing.
func (g *Group) RequirePrior(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if g.failed[name] {
			t.Skipf("prerequisite case %q failed", name)
		}
	}
}
