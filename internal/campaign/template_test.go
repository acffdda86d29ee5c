package campaign

import (
	"strings"
	"testing"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  string
	}{
		{"formal", "formal", StyleFormal},
		{"casual with padding", "  Casual ", StyleCasual},
		{"direct", "direct", StyleDirect},
		{"informal", "informal", StyleInformal},
		{"unknown falls back to formal", "aggressive", StyleFormal},
		{"empty falls back to formal", "", StyleFormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lookup(tt.style); got.Name() != tt.want {
				t.Errorf("Lookup(%q).Name() = %q, want %q", tt.style, got.Name(), tt.want)
			}
		})
	}
}

func TestBuildMessages(t *testing.T) {
	leads := []store.ContactableLead{
		{Company: "Acme Corp", ContactPerson: "Jane Smith", Email: "jane@acme.com"},
		{Company: "Globex", ContactPerson: domain.Unknown, Email: "info@globex.com"},
		{Company: "No Mail Co", ContactPerson: "Bob Jones", Email: ""},
	}
	sender := Sender{Name: "Sam Seller", Position: "AE", Company: "LeadScout"}

	msgs, valid, invalid := BuildMessages(leads, Lookup(StyleFormal), "sam@leadscout.io", sender)

	if valid != 2 || invalid != 1 {
		t.Fatalf("BuildMessages() valid=%d invalid=%d, want 2/1", valid, invalid)
	}
	if len(msgs) != 2 {
		t.Fatalf("BuildMessages() produced %d messages, want 2", len(msgs))
	}

	first := msgs[0]
	if first.RecipientEmail != "jane@acme.com" {
		t.Errorf("RecipientEmail = %q", first.RecipientEmail)
	}
	if want := "Hi Acme Corp, here's a message from sam@leadscout.io"; first.Subject != want {
		t.Errorf("Subject = %q, want %q", first.Subject, want)
	}
	if !strings.Contains(first.HTMLBody, "Dear Jane Smith,") {
		t.Errorf("body missing greeting: %q", first.HTMLBody)
	}
	if !strings.Contains(first.HTMLBody, "Sam Seller") {
		t.Error("body missing sender name")
	}

	// The unknown sentinel never leaks into a greeting.
	second := msgs[1]
	if second.RecipientName != "Dear Sir/Mam" {
		t.Errorf("RecipientName = %q, want fallback greeting", second.RecipientName)
	}
	if strings.Contains(second.HTMLBody, domain.Unknown) {
		t.Errorf("body leaked the unknown sentinel: %q", second.HTMLBody)
	}
}

func TestBuildMessagesEscapesHTML(t *testing.T) {
	leads := []store.ContactableLead{
		{Company: "<script>alert(1)</script>", ContactPerson: "Jane Smith", Email: "j@x.com"},
	}

	msgs, _, _ := BuildMessages(leads, Lookup(StyleDirect), "s@x.com", Sender{Name: "S", Company: "C"})
	if len(msgs) != 1 {
		t.Fatal("want 1 message")
	}
	if strings.Contains(msgs[0].HTMLBody, "<script>") {
		t.Error("company name was not escaped into the HTML body")
	}
}
