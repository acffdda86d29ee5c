package campaign

import (
	"fmt"
	"html/template"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"
)

// Sender identifies who the outreach mail is from; substituted into
// every template.
type Sender struct {
	Name     string
	Position string
	Company  string
}

// Message is one fully rendered outreach email, ready to send.
type Message struct {
	RecipientEmail string
	RecipientName  string
	CompanyName    string
	Subject        string
	HTMLBody       string
}

// templateData is what the templates see per lead.
type templateData struct {
	RecipientName  string
	CompanyName    string
	ContactEmail   string
	SenderName     string
	SenderPosition string
	SenderCompany  string
}

const formalTemplate = `<!DOCTYPE html>
<html lang="en">
<body>
  <div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: auto;">
    <h2>Dear {{.RecipientName}},</h2>
    <p>I hope you're doing well. I wanted to reach out because I believe your company, {{.CompanyName}}, could benefit from our services at {{.SenderCompany}}.</p>
    <p>We've helped similar businesses like {{.CompanyName}} streamline the way they find and reach new customers.</p>
    <p>If this sounds interesting, I'd love to schedule a call or answer any questions you may have. Feel free to <a href="mailto:{{.ContactEmail}}">contact us</a> directly.</p>
    <p>Looking forward to connecting!</p>
    <p>Sincerely,<br>{{.SenderName}}<br>{{.SenderPosition}}<br>{{.SenderCompany}}</p>
  </div>
</body>
</html>`

const casualTemplate = `<!DOCTYPE html>
<html lang="en">
<body>
  <div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: auto;">
    <p>Hi {{.RecipientName}},</p>
    <p>I came across {{.CompanyName}} and thought what you're building looks great. We work with teams like yours at {{.SenderCompany}} and I figured it was worth saying hello.</p>
    <p>Happy to share what we do if you're curious &mdash; just hit reply.</p>
    <p>Cheers,<br>{{.SenderName}}<br>{{.SenderCompany}}</p>
  </div>
</body>
</html>`

const directTemplate = `<!DOCTYPE html>
<html lang="en">
<body>
  <div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: auto;">
    <p>Hello {{.RecipientName}},</p>
    <p>Quick one: {{.SenderCompany}} helps companies like {{.CompanyName}} grow their pipeline. Would a 15-minute call this week be of interest?</p>
    <p>{{.SenderName}}<br>{{.SenderPosition}}, {{.SenderCompany}}</p>
  </div>
</body>
</html>`

const informalTemplate = `<!DOCTYPE html>
<html lang="en">
<body>
  <div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: auto;">
    <p>Hey {{.RecipientName}}!</p>
    <p>Big fan of what {{.CompanyName}} is doing. I'm {{.SenderName}} from {{.SenderCompany}} &mdash; would love to swap notes sometime.</p>
    <p>Talk soon,<br>{{.SenderName}}</p>
  </div>
</body>
</html>`

// Template style names, in menu order.
const (
	StyleFormal   = "formal"
	StyleCasual   = "casual"
	StyleDirect   = "direct"
	StyleInformal = "informal"
)

var templates = map[string]*template.Template{
	StyleFormal:   template.Must(template.New(StyleFormal).Parse(formalTemplate)),
	StyleCasual:   template.Must(template.New(StyleCasual).Parse(casualTemplate)),
	StyleDirect:   template.Must(template.New(StyleDirect).Parse(directTemplate)),
	StyleInformal: template.Must(template.New(StyleInformal).Parse(informalTemplate)),
}

// Lookup returns the named template style, defaulting to formal for
// anything unrecognized.
func Lookup(style string) *template.Template {
	if t, ok := templates[strings.ToLower(strings.TrimSpace(style))]; ok {
		return t
	}
	return templates[StyleFormal]
}

// BuildMessages renders one message per contactable lead. Leads with no
// usable email are counted invalid and skipped, never sent.
func BuildMessages(leads []store.ContactableLead, tmpl *template.Template, from string, sender Sender) (msgs []Message, valid, invalid int) {
	for _, l := range leads {
		if strings.TrimSpace(l.Email) == "" {
			invalid++
			continue
		}

		name := strings.TrimSpace(l.ContactPerson)
		if name == "" || name == domain.Unknown {
			name = "Dear Sir/Mam"
		}

		var b strings.Builder
		err := tmpl.Execute(&b, templateData{
			RecipientName:  name,
			CompanyName:    l.Company,
			ContactEmail:   l.Email,
			SenderName:     sender.Name,
			SenderPosition: sender.Position,
			SenderCompany:  sender.Company,
		})
		if err != nil {
			invalid++
			continue
		}

		valid++
		msgs = append(msgs, Message{
			RecipientEmail: l.Email,
			RecipientName:  name,
			CompanyName:    l.Company,
			Subject:        fmt.Sprintf("Hi %s, here's a message from %s", l.Company, from),
			HTMLBody:       b.String(),
		})
	}
	return msgs, valid, invalid
}
