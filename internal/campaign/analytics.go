package campaign

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Lead engagement categories.
const (
	CategoryHot  = "Hot"
	CategoryCold = "Cold"
)

// LeadStat is one lead's engagement row in a campaign report.
type LeadStat struct {
	Lead         string
	Company      string
	ContactEmail string
	Opened       bool
	Clicked      bool
	Responded    bool
	Category     string
}

// Summary aggregates a campaign's engagement ratios.
type Summary struct {
	TotalSent    int
	OpenRate     float64 // percent
	ClickRate    float64
	ResponseRate float64
	HotLeads     int
	ColdLeads    int
}

// Simulation parameters: opens, clicks, and responses chain with these
// probabilities (a click needs an open, a response needs a click).
const (
	simOpenP     = 0.4
	simClickP    = 0.3
	simResponseP = 0.2
)

var simCompanyNames = []string{
	"Google", "Microsoft", "Apple", "Amazon", "Facebook",
	"Tesla", "Adobe", "Oracle", "Spotify", "Netflix",
}

// SimulateStats fabricates n leads with chained engagement, for demoing
// the analytics flow without a real campaign. Opens and clicks have no
// real ingestion anywhere in the product; only responses can be real,
// via the reply poller.
func SimulateStats(n int, rng *rand.Rand) []LeadStat {
	stats := make([]LeadStat, n)
	for i := range stats {
		company := simCompanyNames[rng.Intn(len(simCompanyNames))]
		opened := rng.Float64() < simOpenP
		clicked := opened && rng.Float64() < simClickP
		responded := clicked && rng.Float64() < simResponseP

		stats[i] = LeadStat{
			Lead:         fmt.Sprintf("Lead %d", i+1),
			Company:      company,
			ContactEmail: strings.ToLower(company) + "@example.com",
			Opened:       opened,
			Clicked:      clicked,
			Responded:    responded,
		}
	}
	Categorize(stats)
	return stats
}

// StatsFromCampaign builds rows for an actually-sent campaign: one row
// per message, responses taken from the reply poller, opens and clicks
// still simulated (no tracking pixels or redirect links exist).
func StatsFromCampaign(msgs []Message, replies map[string]bool, rng *rand.Rand) []LeadStat {
	stats := make([]LeadStat, len(msgs))
	for i, m := range msgs {
		opened := rng.Float64() < simOpenP
		clicked := opened && rng.Float64() < simClickP

		stats[i] = LeadStat{
			Lead:         fmt.Sprintf("Lead %d", i+1),
			Company:      m.CompanyName,
			ContactEmail: m.RecipientEmail,
			Opened:       opened,
			Clicked:      clicked,
			Responded:    replies[strings.ToLower(m.RecipientEmail)],
		}
	}
	Categorize(stats)
	return stats
}

// Categorize labels each row: hot iff opened and clicked.
func Categorize(stats []LeadStat) {
	for i := range stats {
		if stats[i].Opened && stats[i].Clicked {
			stats[i].Category = CategoryHot
		} else {
			stats[i].Category = CategoryCold
		}
	}
}

// Summarize computes the campaign ratios over categorized rows.
func Summarize(stats []LeadStat) Summary {
	s := Summary{TotalSent: len(stats)}
	if s.TotalSent == 0 {
		return s
	}

	var opened, clicked, responded int
	for _, st := range stats {
		if st.Opened {
			opened++
		}
		if st.Clicked {
			clicked++
		}
		if st.Responded {
			responded++
		}
		if st.Category == CategoryHot {
			s.HotLeads++
		} else {
			s.ColdLeads++
		}
	}

	total := float64(s.TotalSent)
	s.OpenRate = float64(opened) / total * 100
	s.ClickRate = float64(clicked) / total * 100
	s.ResponseRate = float64(responded) / total * 100
	return s
}

// WriteReports writes the per-lead detail and the summary as two CSVs
// under dir, named with prefix.
func WriteReports(dir, prefix string, stats []LeadStat, sum Summary) (detailPath, summaryPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	detailPath = filepath.Join(dir, prefix+"_full_details.csv")
	if err := writeCSV(detailPath, detailRows(stats)); err != nil {
		return "", "", err
	}

	summaryPath = filepath.Join(dir, prefix+"_summary.csv")
	if err := writeCSV(summaryPath, summaryRows(sum)); err != nil {
		return "", "", err
	}
	return detailPath, summaryPath, nil
}

func detailRows(stats []LeadStat) [][]string {
	rows := [][]string{{"Lead", "Company", "Contact Email", "Opened Email", "Clicked CTA", "Response", "Lead Category"}}
	for _, st := range stats {
		rows = append(rows, []string{
			st.Lead, st.Company, st.ContactEmail,
			strconv.FormatBool(st.Opened),
			strconv.FormatBool(st.Clicked),
			strconv.FormatBool(st.Responded),
			st.Category,
		})
	}
	return rows
}

func summaryRows(s Summary) [][]string {
	return [][]string{
		{"Total Emails Sent", "Open Rate (%)", "Click-Through Rate (%)", "Response Rate (%)", "Hot Leads", "Cold Leads"},
		{
			strconv.Itoa(s.TotalSent),
			strconv.FormatFloat(s.OpenRate, 'f', 2, 64),
			strconv.FormatFloat(s.ClickRate, 'f', 2, 64),
			strconv.FormatFloat(s.ResponseRate, 'f', 2, 64),
			strconv.Itoa(s.HotLeads),
			strconv.Itoa(s.ColdLeads),
		},
	}
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
