package notifier

import (
	"bytes"
	"html/template"
)

var paymentConfirmationTmpl = template.Must(template.New("payment_confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Payment received</h2>
  <p>Hi {{.Name}},</p>
  <p>Thank you for enrolling with DevOps Community. We have received your payment.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Amount</strong></td><td>{{.Amount}}</td></tr>
    <tr><td><strong>Transaction ID</strong></td><td>{{.PaymentID}}</td></tr>
    {{- if .Contact}}
    <tr><td><strong>Contact</strong></td><td>{{.Contact}}</td></tr>
    {{- end}}
  </table>
  <p>Our team will reach out with course access details shortly.</p>
  <p>DevOps Community</p>
</body>
</html>`))

var inquiryAlertTmpl = template.Must(template.New("inquiry_alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>New {{.Type}} inquiry</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
    <tr><td><strong>Submitted</strong></td><td>{{.SubmittedAt}}</td></tr>
  </table>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`))

type paymentConfirmationView struct {
	Name      string
	Amount    string
	PaymentID string
	Contact   string
}

type inquiryAlertView struct {
	Type        string
	Name        string
	Email       string
	Phone       string
	Message     string
	SubmittedAt string
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
