package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything worth
// telling the user about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// ---- Normalization ----

	if strings.TrimSpace(out.App.OutputDir) == "" {
		out.App.OutputDir = "output"
	}
	if strings.TrimSpace(out.App.AnalyticsDir) == "" {
		out.App.AnalyticsDir = "Analytics"
	}
	if out.Scraper.UserAgent == "" {
		out.Scraper.UserAgent = "Mozilla/5.0"
	}
	if out.Scraper.SearchWorkers <= 0 {
		out.Scraper.SearchWorkers = 5
	}
	if out.Scraper.SearchPages <= 0 {
		out.Scraper.SearchPages = 10
	}
	if out.Campaign.Mailbox == "" {
		out.Campaign.Mailbox = "INBOX"
	}
	if out.Campaign.BatchSize <= 0 {
		out.Campaign.BatchSize = 10
	}
	if out.Campaign.SendsPerSecond <= 0 {
		out.Campaign.SendsPerSecond = 0.5
	}

	// ---- Validation rules ----

	if out.Scraper.TimeoutSeconds < 0 {
		res.addErr("scraper.timeout_seconds must be >= 0")
	}
	if out.Scraper.TimeoutSeconds > 60 {
		res.addWarn("scraper.timeout_seconds is very high (%d); slow sites will stall batches.", out.Scraper.TimeoutSeconds)
	}
	if out.Scraper.SearchWorkers > 20 {
		res.addWarn("scraper.search_workers is %d; the search backend may throttle you.", out.Scraper.SearchWorkers)
	}

	// campaign fields are only required once a send is attempted; the
	// scraper pipelines must work without them
	if out.Campaign.SMTPHost != "" {
		if out.Campaign.SMTPPort == 0 {
			res.addErr("campaign.smtp_port is required when campaign.smtp_host is set")
		}
		if strings.TrimSpace(out.Campaign.Username) == "" {
			res.addErr("campaign.username is required when campaign.smtp_host is set")
		}
		if strings.TrimSpace(out.Campaign.From) == "" {
			res.addWarn("campaign.from is empty; falling back to campaign.username as sender.")
		}
	}
	if out.Campaign.IMAPHost != "" && out.Campaign.IMAPPort == 0 {
		res.addErr("campaign.imap_port is required when campaign.imap_host is set")
	}

	return out, res
}
