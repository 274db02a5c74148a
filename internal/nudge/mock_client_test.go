package nudge

import "github.com/brk3/lifemanager/internal/state"

type mockClient struct {
	state state.State
}

func (f *mockClient) Snapshot() state.State {
	return f.state
}
