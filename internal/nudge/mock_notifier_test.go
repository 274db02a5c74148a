package nudge

type mockNotifier struct {
	called   bool
	reminder Reminder
	err      error
}

func (m *mockNotifier) SendNudge(r Reminder) error {
	m.called = true
	m.reminder = r
	return m.err
}
