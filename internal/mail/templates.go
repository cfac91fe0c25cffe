package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Subjects for the four outgoing message kinds.
const (
	SubjectVerify   = "Verify Your Email"
	SubjectWelcome  = "Welcome Message"
	SubjectReset    = "Password Reset"
	SubjectReminder = "Todo Reminder"
)

var (
	verifyTmpl = template.Must(template.New("verify").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #1E8A6F;">Welcome to Focus Pad, {{.Name}} 👋</h2>
  <p>Please verify your email to activate your account:</p>
  <a href="{{.Link}}" style="background: #1E8A6F; padding: 10px 15px; color: white; text-decoration: none; border-radius: 5px;">Verify Email</a>
  <p>If you didn't register, you can ignore this email.</p>
  <p style="margin-top: 30px; font-size: 12px; color: #888;">Focus Pad &copy; {{.Year}}</p>
</div>`))

	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #1E8A6F;">Welcome to Focus Pad, {{.Name}} 🎉</h2>
  <p>We're thrilled to have you on board. Your journey to better focus, clarity, and well-being starts here.</p>
  <p>Explore, connect, and thrive with our easy-to-use platform tailored just for you.</p>
  <p style="margin-top: 20px;">If you have any questions, feel free to reach out.</p>
  <p style="margin-top: 30px; font-size: 12px; color: #888;">Focus Pad &copy; {{.Year}}</p>
</div>`))

	resetTmpl = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hello {{.Name}},</h2>
  <p>You recently requested to reset your password.</p>
  <p>Click the button below to reset it. This link will expire in 1 hour.</p>
  <a href="{{.Link}}" style="background: #1E8A6F; padding: 10px 15px; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a>
  <p>If you didn't request this, just ignore it.</p>
  <p style="margin-top: 30px; font-size: 12px; color: #888;">Focus Pad &copy; {{.Year}}</p>
</div>`))

	reminderTmpl = template.Must(template.New("reminder").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #1E8A6F;">Hey {{.Name}}, don't forget! ⏰</h2>
  <p>Your todo <strong>{{.Title}}</strong> is due{{if .DueDate}} on <strong>{{.DueDate}}</strong>{{end}}.</p>
  <p>Open Focus Pad to get it done.</p>
  <p style="margin-top: 30px; font-size: 12px; color: #888;">Focus Pad &copy; {{.Year}}</p>
</div>`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// VerifyEmailBody renders the verification mail pointing at link.
func VerifyEmailBody(name, link string) (string, error) {
	return render(verifyTmpl, map[string]any{"Name": name, "Link": link, "Year": time.Now().Year()})
}

// WelcomeBody renders the post-verification welcome mail.
func WelcomeBody(name string) (string, error) {
	return render(welcomeTmpl, map[string]any{"Name": name, "Year": time.Now().Year()})
}

// ResetPasswordBody renders the password reset mail pointing at link.
func ResetPasswordBody(name, link string) (string, error) {
	return render(resetTmpl, map[string]any{"Name": name, "Link": link, "Year": time.Now().Year()})
}

// ReminderBody renders the todo reminder mail. dueDate may be nil.
func ReminderBody(name, title string, dueDate *time.Time) (string, error) {
	due := ""
	if dueDate != nil {
		due = dueDate.Format("02/01/2006")
	}
	return render(reminderTmpl, map[string]any{
		"Name": name, "Title": title, "DueDate": due, "Year": time.Now().Year(),
	})
}
