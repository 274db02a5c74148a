package resend

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/brk3/lifemanager/internal/nudge"
	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

const htmlTemplate = `
<p>Today ({{.Day}}) you are at <strong>{{.Score.Total}}%</strong>{{if lt .Score.Total .Threshold}}, under your {{.Threshold}}% goal{{end}}.</p>
{{if .PendingHabits}}
<p>Habits still to do:</p>
<ul>
{{range .PendingHabits}}
  <li>{{.}}</li>
{{end}}
</ul>
{{end}}
{{if .OpenTasks}}
<p>Recurring tasks still open:</p>
<ul>
{{range .OpenTasks}}
  <li>{{.}}</li>
{{end}}
</ul>
{{end}}
`

var emailTemplate = template.Must(template.New("email").Parse(htmlTemplate))

// Render produces the e-mail body for r.
func Render(r nudge.Reminder) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Subject(r nudge.Reminder) string {
	return fmt.Sprintf("Life Manager: %d%% so far today", r.Score.Total)
}

func (n *ResendNotifier) SendNudge(r nudge.Reminder) error {
	body, err := Render(r)
	if err != nil {
		return err
	}

	from := n.From
	if from == "" {
		from = "onboarding@resend.dev"
	}
	client := resend.NewClient(n.ApiKey)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{n.Email},
		Subject: Subject(r),
		Html:    body,
	}

	_, err = client.Emails.Send(params)
	return err
}

var _ nudge.Notifier = (*ResendNotifier)(nil)
