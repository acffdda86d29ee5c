package export

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"leadscout-engine/internal/domain"
)

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	return rows
}

func TestAppendFullICPCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full_icp.xlsx")

	lead := domain.LeadRecord{
		Website:     "https://acme.com",
		CompanyName: "Acme Corp",
		Industry:    "Software",
		Emails:      []string{"a@acme.com", "b@acme.com"},
		Phones:      []string{"+15551234567"},
		Social: map[string]string{
			domain.PlatformLinkedIn: "https://linkedin.com/company/acme",
		},
		TechStack: []string{"React", "Wordpress"},
		Source:    domain.SourceSite,
	}

	if err := AppendFullICP(path, []domain.LeadRecord{lead}); err != nil {
		t.Fatalf("AppendFullICP() error: %v", err)
	}

	rows := readSheet(t, path)
	if len(rows) != 2 {
		t.Fatalf("workbook has %d rows, want header + 1", len(rows))
	}
	if diff := cmp.Diff(FullICPHeaders, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	want := []string{
		"https://acme.com", "Acme Corp", domain.Unknown, "Software",
		domain.Unknown, "a@acme.com; b@acme.com", "+15551234567",
		domain.Unknown, domain.Unknown, domain.Unknown, "React, Wordpress",
		"https://linkedin.com/company/acme", domain.Unknown, domain.Unknown,
		domain.Unknown, domain.Unknown, domain.Unknown,
	}
	if diff := cmp.Diff(want, rows[1]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}

	// A second append lands after the existing rows, not over them.
	if err := AppendFullICP(path, []domain.LeadRecord{lead}); err != nil {
		t.Fatalf("second AppendFullICP() error: %v", err)
	}
	if rows := readSheet(t, path); len(rows) != 3 {
		t.Errorf("workbook has %d rows after second append, want 3", len(rows))
	}
}

func TestAppendGeneralOrdersContactableFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "general_icp.xlsx")

	var p domain.Partition
	p.Add(domain.LeadRecord{CompanyName: "No Contact Co", Website: "https://nc.example", Source: domain.SourceSearch})
	p.Add(domain.LeadRecord{
		CompanyName: "Reachable Co",
		Website:     "https://r.example",
		Emails:      []string{"hi@r.example"},
		Source:      domain.SourceSearch,
	})

	if err := AppendGeneral(path, p); err != nil {
		t.Fatalf("AppendGeneral() error: %v", err)
	}

	rows := readSheet(t, path)
	if len(rows) != 3 {
		t.Fatalf("workbook has %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "Reachable Co" {
		t.Errorf("first data row = %q, want the contactable lead first", rows[1][0])
	}
	if rows[2][0] != "No Contact Co" {
		t.Errorf("second data row = %q", rows[2][0])
	}
}

func TestAppendAggregatorFlattenedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregator_icp.xlsx")

	var p domain.Partition
	p.Add(domain.LeadRecord{
		CompanyName:       "Acme Corp",
		Website:           "https://acme.com",
		Emails:            []string{"hello@acme.com"},
		Employees:         "Jane Smith; John Doe",
		EmployeePositions: "CTO; VP Sales",
		SimilarCompanies:  "Globex; Initech",
		Source:            domain.SourceAggregator,
	})

	if err := AppendAggregator(path, p); err != nil {
		t.Fatalf("AppendAggregator() error: %v", err)
	}

	rows := readSheet(t, path)
	if len(rows) != 2 {
		t.Fatalf("workbook has %d rows, want header + 1", len(rows))
	}
	row := rows[1]
	if got := row[9]; got != "Jane Smith; John Doe" {
		t.Errorf("employees column = %q", got)
	}
	if got := row[13]; got != "Globex; Initech" {
		t.Errorf("similar companies column = %q", got)
	}
}

func TestAppendEmptyBatchIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noop.xlsx")
	if err := AppendFullICP(path, nil); err != nil {
		t.Fatalf("AppendFullICP(nil) error: %v", err)
	}
	if _, err := excelize.OpenFile(path); err == nil {
		t.Error("empty batch should not create the workbook")
	}
}
