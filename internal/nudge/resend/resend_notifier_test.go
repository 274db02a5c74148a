package resend

import (
	"strings"
	"testing"

	"github.com/brk3/lifemanager/internal/nudge"
	"github.com/brk3/lifemanager/pkg/habit"
)

func TestRender(t *testing.T) {
	r := nudge.Reminder{
		Day:           "2024-06-12",
		Score:         habit.Score{Total: 40, Completed: 2, TotalHabits: 5},
		Threshold:     60,
		PendingHabits: []string{"Read <books>"},
		OpenTasks:     []string{"Weekly review"},
	}
	body, err := Render(r)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"2024-06-12", "40%", "under your 60% goal", "Read &lt;books&gt;", "Weekly review"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if got := Subject(r); got != "Life Manager: 40% so far today" {
		t.Errorf("got subject %q", got)
	}
}
