package fixture

import (
	"fmt"
	"sync"

	"github.com/robmorgan/metro/config"
)

// StateManager owns the patched fixtures and the DMX values rendered from them.
type StateManager struct {
	mu       sync.Mutex
	group    *Group
	dmxState DMXState
}

// NewManager patches every configured fixture. Duplicate names and unknown profiles are rejected.
func NewManager(cfg config.MetroConfig) (*StateManager, error) {
	group := NewGroup()
	for _, pf := range cfg.DMX.PatchedFixtures {
		if group.HasFixture(pf.Name) {
			return nil, fmt.Errorf("fixture %q is patched twice", pf.Name)
		}
		p, found := cfg.GetProfile(pf.Profile)
		if !found {
			return nil, fmt.Errorf("fixture %q uses unknown profile %q", pf.Name, pf.Profile)
		}
		if pf.Address < 1 || pf.Address+p.Footprint()-1 > UniverseSize {
			return nil, fmt.Errorf("fixture %q does not fit at address %d", pf.Name, pf.Address)
		}
		group.AddFixture(pf.Name, NewFixture(pf.Name, pf.Universe, pf.Address, p))
	}

	return &StateManager{group: group}, nil
}

// Group returns the patched fixtures.
func (m *StateManager) Group() *Group {
	return m.group
}

// GetDMXState returns the current dmx state
func (m *StateManager) GetDMXState() *DMXState {
	return &m.dmxState
}

// Apply runs f on every fixture and renders the ones that changed.
func (m *StateManager) Apply(f func(*Fixture)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range m.group.Names() {
		fix := m.group.Fixtures[name]
		f(fix)
		if !fix.NeedsUpdate() {
			continue
		}
		if err := m.dmxState.set(fix.operations()...); err != nil {
			return err
		}
		fix.HasUpdated()
	}
	return nil
}
