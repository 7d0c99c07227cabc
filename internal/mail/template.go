package mail

import (
	"fmt"
	"html/template"
	"strings"
)

var inviteTemplate = template.Must(template.New("invite").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1a1a2e;">
    <h2>Hi {{.Name}},</h2>
    <p>You have been invited to join a project on Chordfund as <strong>{{.Role}}</strong>.</p>
    <p>
      <a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background: #6c3ce9; color: #ffffff; text-decoration: none; border-radius: 6px;">
        View your invite
      </a>
    </p>
    <p>If you were not expecting this invitation, you can ignore this email.</p>
  </body>
</html>`))

type inviteTemplateData struct {
	Name string
	Role string
	Link string
}

// RenderInvite produces the invite announcement body for the given
// recipient.
func RenderInvite(name, role, link string) (string, error) {
	var buf strings.Builder
	err := inviteTemplate.Execute(&buf, inviteTemplateData{
		Name: name,
		Role: role,
		Link: link,
	})
	if err != nil {
		return "", fmt.Errorf("rendering invite template: %w", err)
	}
	return buf.String(), nil
}
