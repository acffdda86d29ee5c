package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"leadscout-engine/internal/domain"
)

// Migrate brings the schema up to v1. The PRAGMA user_version dance
// keeps re-runs cheap.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS leads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  website TEXT NOT NULL,
  company TEXT NOT NULL,
  contact_person TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  company_size TEXT NOT NULL DEFAULT '',
  emails TEXT NOT NULL DEFAULT '',
  phones TEXT NOT NULL DEFAULT '',
  contact_page TEXT NOT NULL DEFAULT '',
  careers_page TEXT NOT NULL DEFAULT '',
  tech_stack TEXT NOT NULL DEFAULT '',
  has_contact INTEGER NOT NULL DEFAULT 0,
  source_key TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_source_key ON leads(source_key);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// sourceKey dedupes a lead within the store: a website is the same lead
// no matter which run found it, per source.
func sourceKey(l domain.LeadRecord) string {
	site := strings.ToLower(strings.TrimSpace(l.Website))
	if site == "" || site == domain.Unknown {
		site = strings.ToLower(strings.TrimSpace(l.CompanyName))
	}
	return l.Source + ":" + site
}

// InsertLeadIfNew inserts one record, reporting whether it was newly
// added. Duplicates (same source key) are silently ignored.
func InsertLeadIfNew(ctx context.Context, db *sql.DB, l domain.LeadRecord) (added bool, err error) {
	hasContact := 0
	if l.HasContact() {
		hasContact = 1
	}

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO leads
  (source, website, company, contact_person, industry, location, company_size,
   emails, phones, contact_page, careers_page, tech_stack, has_contact,
   source_key, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		l.Source, l.Website, l.CompanyName, l.ContactPerson, l.Industry,
		l.Location, l.CompanySize,
		strings.Join(l.Emails, "; "), strings.Join(l.Phones, "; "),
		l.ContactPage, l.CareersPage, strings.Join(l.TechStack, ", "),
		hasContact, sourceKey(l), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// InsertLeads inserts a batch, returning how many were new.
func InsertLeads(ctx context.Context, db *sql.DB, leads []domain.LeadRecord) (added int, err error) {
	for _, l := range leads {
		ok, ierr := InsertLeadIfNew(ctx, db, l)
		if ierr != nil {
			return added, ierr
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// ContactableLead is the slice of a stored lead the campaign module
// needs: someone to write to and the fields the templates substitute.
type ContactableLead struct {
	Company       string
	ContactPerson string
	Email         string
}

// ListContactableLeads returns every stored lead that has at least one
// email, newest first. Only the first stored email is used for outreach.
func ListContactableLeads(ctx context.Context, db *sql.DB) ([]ContactableLead, error) {
	rows, err := db.QueryContext(ctx, `
SELECT company, contact_person, emails
FROM leads
WHERE emails != ''
ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactableLead
	for rows.Next() {
		var c ContactableLead
		var emails string
		if err := rows.Scan(&c.Company, &c.ContactPerson, &emails); err != nil {
			return nil, err
		}
		if i := strings.Index(emails, ";"); i >= 0 {
			emails = emails[:i]
		}
		c.Email = strings.TrimSpace(emails)
		if c.Email == "" {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountLeads reports total and contactable counts for the status line.
func CountLeads(ctx context.Context, db *sql.DB) (total, withContact int, err error) {
	err = db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(has_contact), 0) FROM leads;`).Scan(&total, &withContact)
	return total, withContact, err
}
