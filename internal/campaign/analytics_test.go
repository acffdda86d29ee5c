package campaign

import (
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"testing"
)

func TestSimulateStatsChaining(t *testing.T) {
	stats := SimulateStats(500, rand.New(rand.NewSource(1)))

	if len(stats) != 500 {
		t.Fatalf("SimulateStats() produced %d rows, want 500", len(stats))
	}
	for i, st := range stats {
		if st.Clicked && !st.Opened {
			t.Fatalf("row %d clicked without opening", i)
		}
		if st.Responded && !st.Clicked {
			t.Fatalf("row %d responded without clicking", i)
		}
		wantCat := CategoryCold
		if st.Opened && st.Clicked {
			wantCat = CategoryHot
		}
		if st.Category != wantCat {
			t.Fatalf("row %d category = %q, want %q", i, st.Category, wantCat)
		}
	}
}

func TestStatsFromCampaignUsesRealReplies(t *testing.T) {
	msgs := []Message{
		{RecipientEmail: "Jane@Acme.com", CompanyName: "Acme"},
		{RecipientEmail: "bob@globex.com", CompanyName: "Globex"},
	}
	replies := map[string]bool{"jane@acme.com": true}

	stats := StatsFromCampaign(msgs, replies, rand.New(rand.NewSource(1)))

	if len(stats) != 2 {
		t.Fatalf("StatsFromCampaign() produced %d rows, want 2", len(stats))
	}
	if !stats[0].Responded {
		t.Error("reply lookup should be case-insensitive on the recipient address")
	}
	if stats[1].Responded {
		t.Error("no reply recorded for the second recipient")
	}
}

func TestSummarize(t *testing.T) {
	stats := []LeadStat{
		{Opened: true, Clicked: true, Responded: true},
		{Opened: true},
		{},
		{},
	}
	Categorize(stats)

	s := Summarize(stats)
	if s.TotalSent != 4 {
		t.Errorf("TotalSent = %d", s.TotalSent)
	}
	if math.Abs(s.OpenRate-50) > 1e-9 {
		t.Errorf("OpenRate = %v, want 50", s.OpenRate)
	}
	if math.Abs(s.ClickRate-25) > 1e-9 {
		t.Errorf("ClickRate = %v, want 25", s.ClickRate)
	}
	if math.Abs(s.ResponseRate-25) > 1e-9 {
		t.Errorf("ResponseRate = %v, want 25", s.ResponseRate)
	}
	if s.HotLeads != 1 || s.ColdLeads != 3 {
		t.Errorf("hot/cold = %d/%d, want 1/3", s.HotLeads, s.ColdLeads)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalSent != 0 || s.OpenRate != 0 {
		t.Errorf("Summarize(nil) = %+v, want zeroes", s)
	}
}

func TestWriteReports(t *testing.T) {
	dir := t.TempDir()
	stats := SimulateStats(5, rand.New(rand.NewSource(42)))
	sum := Summarize(stats)

	detail, summary, err := WriteReports(dir, "email_campaign_analytics", stats, sum)
	if err != nil {
		t.Fatalf("WriteReports() error: %v", err)
	}

	rows := readCSV(t, detail)
	if len(rows) != 6 {
		t.Errorf("detail rows = %d, want header + 5", len(rows))
	}
	if rows[0][0] != "Lead" || rows[0][6] != "Lead Category" {
		t.Errorf("unexpected detail header: %v", rows[0])
	}

	rows = readCSV(t, summary)
	if len(rows) != 2 {
		t.Fatalf("summary rows = %d, want 2", len(rows))
	}
	if rows[1][0] != "5" {
		t.Errorf("summary total = %q, want 5", rows[1][0])
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}
