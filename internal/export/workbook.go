// Package export appends lead records to xlsx workbooks, creating the
// file with a fixed header row when it does not exist yet. Column order
// is part of the output contract; downstream tooling indexes by
// position.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/xuri/excelize/v2"

	"leadscout-engine/internal/domain"
)

const sheetName = "ICP Data"

// FullICPHeaders is the 17-column sheet of the direct-scrape pipeline.
var FullICPHeaders = []string{
	"Website", "Company Name", "Contact Person", "Industry", "Location",
	"Contact Email", "Phones", "WhatsApp", "Contact Page", "Careers Page",
	"Tech Stack", "LinkedIn", "Twitter", "Facebook", "Instagram",
	"YouTube", "Gov / Partner Links",
}

// GeneralHeaders is the 9-column sheet of the search pipeline.
var GeneralHeaders = []string{
	"Company Name", "Contact Person", "Industry", "Website/URL",
	"Location", "Company Size", "Tech Stack", "Contact Email", "Phone",
}

// AggregatorHeaders is the 14-column sheet of the aggregator pipeline.
var AggregatorHeaders = []string{
	"Company Name", "Contact Person", "Industry", "Website/URL",
	"Location", "Company Size", "Tech Stack", "Contact Email", "Phone",
	"Employees", "Employee Positions", "Profiles", "Updates",
	"Similar Companies",
}

// AppendFullICP appends direct-scrape records.
func AppendFullICP(path string, leads []domain.LeadRecord) error {
	rows := make([][]any, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []any{
			orUnknown(l.Website),
			orUnknown(l.CompanyName),
			orUnknown(l.ContactPerson),
			orUnknown(l.Industry),
			orUnknown(l.Location),
			joinOrUnknown(l.Emails, "; "),
			joinOrUnknown(l.Phones, "; "),
			joinOrUnknown(l.WhatsAppLinks, "; "),
			orUnknown(l.ContactPage),
			orUnknown(l.CareersPage),
			joinOrUnknown(l.TechStack, ", "),
			orUnknown(l.Social[domain.PlatformLinkedIn]),
			orUnknown(l.Social[domain.PlatformTwitter]),
			orUnknown(l.Social[domain.PlatformFacebook]),
			orUnknown(l.Social[domain.PlatformInstagram]),
			orUnknown(l.Social[domain.PlatformYouTube]),
			joinOrUnknown(l.PartnerLinks, "; "),
		})
	}
	return appendRows(path, FullICPHeaders, rows)
}

// AppendGeneral appends search-pipeline records, contactable first.
func AppendGeneral(path string, p domain.Partition) error {
	rows := make([][]any, 0, len(p.With)+len(p.Without))
	for _, l := range p.All() {
		rows = append(rows, []any{
			orUnknown(l.CompanyName),
			orUnknown(l.ContactPerson),
			orUnknown(l.Industry),
			orUnknown(l.Website),
			orUnknown(l.Location),
			orUnknown(l.CompanySize),
			joinOrUnknown(l.TechStack, ", "),
			joinOrUnknown(l.Emails, "; "),
			joinOrUnknown(l.Phones, "; "),
		})
	}
	return appendRows(path, GeneralHeaders, rows)
}

// AppendAggregator appends aggregator records, contactable first.
func AppendAggregator(path string, p domain.Partition) error {
	rows := make([][]any, 0, len(p.With)+len(p.Without))
	for _, l := range p.All() {
		rows = append(rows, []any{
			orUnknown(l.CompanyName),
			orUnknown(l.ContactPerson),
			orUnknown(l.Industry),
			orUnknown(l.Website),
			orUnknown(l.Location),
			orUnknown(l.CompanySize),
			joinOrUnknown(l.TechStack, ", "),
			joinOrUnknown(l.Emails, "; "),
			joinOrUnknown(l.Phones, "; "),
			orUnknown(l.Employees),
			orUnknown(l.EmployeePositions),
			orUnknown(l.ProfileURLs),
			orUnknown(l.Updates),
			orUnknown(l.SimilarCompanies),
		})
	}
	return appendRows(path, AggregatorHeaders, rows)
}

// appendRows opens or creates the workbook and writes rows after the
// last used row. A sidecar flock guards the file against a second
// engine instance appending at the same time.
func appendRows(path string, headers []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock workbook %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	f, next, err := openOrCreate(path, headers)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", next+i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// openOrCreate returns the workbook and the first free row index.
func openOrCreate(path string, headers []string) (*excelize.File, int, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("open workbook %s: %w", path, err)
		}
		rows, err := f.GetRows(sheetName)
		if err != nil {
			_ = f.Close()
			return nil, 0, fmt.Errorf("read workbook %s: %w", path, err)
		}
		return f, len(rows) + 1, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, 0, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, 0, err
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, 2, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.Unknown
	}
	return s
}

func joinOrUnknown(xs []string, sep string) string {
	if len(xs) == 0 {
		return domain.Unknown
	}
	return strings.Join(xs, sep)
}
