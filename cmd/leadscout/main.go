package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"leadscout-engine/internal/aggregator"
	"leadscout-engine/internal/campaign"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/scrape"
	"leadscout-engine/internal/search"
	"leadscout-engine/internal/secrets"
	"leadscout-engine/internal/store"
)

func main() {
	// .env feeds the keychain fallbacks; missing file is fine.
	_ = godotenv.Load()

	dataDir := os.Getenv("LEADSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}

	db, err := store.Open(filepath.Join(dataDir, "leadscout.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	a := &app{
		cfg: cfg,
		db:  db,
		in:  bufio.NewScanner(os.Stdin),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	a.run()
}

type app struct {
	cfg config.Config
	db  *store.DB
	in  *bufio.Scanner
	rng *rand.Rand

	// last sent campaign, consumed by the real-analytics flow
	lastCampaign []campaign.Message
	lastSentAt   time.Time
}

func (a *app) run() {
	for {
		fmt.Println()
		fmt.Println("LeadScout")
		fmt.Println("1. Scraper")
		fmt.Println("2. Email campaign")
		fmt.Println("3. Campaign analytics")
		fmt.Println("4. Exit")

		switch a.prompt("Choose an option (1-4)") {
		case "1":
			a.scraperMenu()
		case "2":
			a.campaignFlow()
		case "3":
			a.analyticsFlow()
		case "4":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

func (a *app) scraperMenu() {
	fmt.Println()
	fmt.Println("1. Specific website (no API)")
	fmt.Println("2. General search with ICP (SerpAPI)")
	fmt.Println("3. Full LinkedIn company details (ScrapingDog)")
	fmt.Println("4. Multi-domain file (no API)")
	fmt.Println("5. Back")

	switch a.prompt("Choose an option (1-5)") {
	case "1":
		host := a.prompt("Website to scrape (e.g. example.com)")
		if host == "" {
			fmt.Println("No website given.")
			return
		}
		a.runSiteScrape([]string{host}, "full_icp.xlsx")
	case "2":
		a.runSearch()
	case "3":
		a.runAggregator()
	case "4":
		path := a.prompt("Path to line-delimited domain list file")
		hosts, err := readDomainList(path)
		if err != nil {
			fmt.Printf("Could not read domain list: %v\n", err)
			return
		}
		if len(hosts) == 0 {
			fmt.Println("Domain list is empty.")
			return
		}
		a.runSiteScrape(hosts, "full_icp_multi.xlsx")
	case "5":
	default:
		fmt.Println("Invalid choice.")
	}
}

func (a *app) runSiteScrape(hosts []string, workbook string) {
	ctx := context.Background()
	fetcher := scrape.NewFetcher(a.cfg.FetchTimeout(), a.cfg.Scraper.UserAgent)
	scraper := scrape.NewSiteScraper(fetcher)

	leads := scraper.ScrapeSites(ctx, hosts)
	if len(leads) == 0 {
		fmt.Println("No records produced.")
		return
	}

	a.persist(ctx, leads, filepath.Join(a.cfg.App.OutputDir, workbook), func(path string) error {
		return export.AppendFullICP(path, leads)
	})
}

func (a *app) runSearch() {
	q := domain.Query{
		Industry:    a.prompt("Industry (e.g. Software Development)"),
		Location:    a.prompt("Location (e.g. Ahmedabad)"),
		CompanySize: a.prompt("Company size (e.g. 100+ employees)"),
		TechStack:   a.prompt("Technology/stack (e.g. Python, Django)"),
		Type:        domain.SearchLinkedInCompany,
	}

	apiKey, err := secrets.Get(secrets.AccountSerpAPI)
	if err != nil {
		fmt.Printf("Search unavailable: %v\n", err)
		return
	}

	ctx := context.Background()
	client := search.NewSerpClient(apiKey, "")
	fetcher := scrape.NewFetcher(a.cfg.FetchTimeout(), a.cfg.Scraper.UserAgent)
	engine := &search.Engine{
		Backends: []search.Backend{
			search.GoogleBackend{Client: client},
			search.LinkedInBackend{Client: client},
		},
		Enricher:   &search.Enricher{Fetcher: fetcher},
		Workers:    a.cfg.Scraper.SearchWorkers,
		PageStarts: pageStarts(a.cfg.Scraper.SearchPages),
	}

	part := engine.Run(ctx, q)
	leads := part.All()
	if len(leads) == 0 {
		fmt.Println("No records produced.")
		return
	}
	fmt.Printf("%d leads with contact info, %d without.\n", len(part.With), len(part.Without))

	a.persist(ctx, leads, filepath.Join(a.cfg.App.OutputDir, "general_icp.xlsx"), func(path string) error {
		return export.AppendGeneral(path, part)
	})
}

func (a *app) runAggregator() {
	linkedInURL := a.prompt("LinkedIn company URL")
	companyID := aggregator.CompanyID(linkedInURL)
	if companyID == "" {
		fmt.Println("Could not extract a company identifier from that URL.")
		return
	}

	apiKey, err := secrets.Get(secrets.AccountScrapingDog)
	if err != nil {
		fmt.Printf("Aggregator unavailable: %v\n", err)
		return
	}

	ctx := context.Background()
	client := aggregator.New(apiKey, "")
	leads, err := client.FetchCompany(ctx, companyID)
	if err != nil {
		// zero leads from this source; the run goes on
		log.Printf("[aggregator] %v", err)
	}
	if len(leads) == 0 {
		fmt.Println("No records produced.")
		return
	}

	part := domain.PartitionLeads(leads)
	fmt.Printf("%d leads with contact info, %d without.\n", len(part.With), len(part.Without))

	a.persist(ctx, leads, filepath.Join(a.cfg.App.OutputDir, "aggregator_icp.xlsx"), func(path string) error {
		return export.AppendAggregator(path, part)
	})
}

// persist stores the records and appends them to the workbook. Failures
// here are reported, never fatal; the in-memory records already exist.
func (a *app) persist(ctx context.Context, leads []domain.LeadRecord, workbookPath string, appendFn func(string) error) {
	added, err := store.InsertLeads(ctx, a.db.Pool, leads)
	if err != nil {
		log.Printf("[store] insert: %v", err)
	}
	fmt.Printf("Stored %d new leads (of %d scraped).\n", added, len(leads))

	if err := appendFn(workbookPath); err != nil {
		log.Printf("[export] %v", err)
		return
	}
	fmt.Printf("Saved to %s\n", workbookPath)
}

func (a *app) campaignFlow() {
	ctx := context.Background()

	leads, err := store.ListContactableLeads(ctx, a.db.Pool)
	if err != nil {
		log.Printf("[campaign] list leads: %v", err)
		return
	}
	if len(leads) == 0 {
		fmt.Println("No contactable leads stored yet. Run the scraper first.")
		return
	}

	sender := campaign.Sender{
		Name:     a.prompt("Your name"),
		Position: a.prompt("Your position"),
		Company:  a.prompt("Your company"),
	}

	fmt.Println("Template styles: formal, casual, direct, informal")
	tmpl := campaign.Lookup(a.prompt("Template style"))

	from := a.cfg.Campaign.From
	if from == "" {
		from = a.cfg.Campaign.Username
	}

	msgs, valid, invalid := campaign.BuildMessages(leads, tmpl, from, sender)
	fmt.Printf("Valid emails to be sent: %d\n", valid)
	fmt.Printf("Skipped (missing or invalid email): %d\n", invalid)
	if len(msgs) == 0 {
		return
	}

	if a.prompt("Send the emails? (y/n)") != "y" {
		fmt.Println("Not sending.")
		return
	}

	if a.cfg.Campaign.SMTPHost == "" {
		fmt.Println("campaign.smtp_host is not configured; cannot send.")
		return
	}
	password, err := secrets.Get(secrets.AccountSMTP)
	if err != nil {
		fmt.Printf("Cannot send: %v\n", err)
		return
	}

	mailer := campaign.NewMailer(campaign.SMTPConfig{
		Host:     a.cfg.Campaign.SMTPHost,
		Port:     a.cfg.Campaign.SMTPPort,
		Username: a.cfg.Campaign.Username,
		Password: password,
		From:     from,
	}, a.cfg.Campaign.BatchSize, a.cfg.Campaign.SendsPerSecond)

	sent, failed := mailer.SendBulk(ctx, msgs)
	fmt.Printf("Total emails sent: %d\n", sent)
	fmt.Printf("Total emails failed: %d\n", failed)

	a.lastCampaign = msgs
	a.lastSentAt = time.Now()
}

func (a *app) analyticsFlow() {
	fmt.Println()
	fmt.Println("1. Simulated analytics")
	fmt.Println("2. Real analytics (replies via IMAP)")

	var stats []campaign.LeadStat
	var prefix string

	switch a.prompt("Choose a mode (1-2)") {
	case "1":
		stats = campaign.SimulateStats(50, a.rng)
		prefix = "email_campaign_analytics"
	case "2":
		if len(a.lastCampaign) == 0 {
			fmt.Println("No campaign sent in this session; nothing to analyze.")
			return
		}
		replies := a.pollReplies()
		stats = campaign.StatsFromCampaign(a.lastCampaign, replies, a.rng)
		prefix = "real_email_campaign_analytics"
	default:
		fmt.Println("Invalid choice.")
		return
	}

	sum := campaign.Summarize(stats)
	fmt.Println("\nEmail Campaign Analytics Summary")
	fmt.Printf("Total Emails Sent: %d\n", sum.TotalSent)
	fmt.Printf("Open Rate: %.2f%%\n", sum.OpenRate)
	fmt.Printf("Click-Through Rate: %.2f%%\n", sum.ClickRate)
	fmt.Printf("Response Rate: %.2f%%\n", sum.ResponseRate)
	fmt.Printf("Hot Leads: %d\n", sum.HotLeads)
	fmt.Printf("Cold Leads: %d\n", sum.ColdLeads)

	detail, summary, err := campaign.WriteReports(a.cfg.App.AnalyticsDir, prefix, stats, sum)
	if err != nil {
		log.Printf("[analytics] write reports: %v", err)
		return
	}
	fmt.Printf("Report saved as %s\n", detail)
	fmt.Printf("Summary saved as %s\n", summary)
}

// pollReplies asks the configured mailbox which contacted leads have
// answered since the campaign went out. Any failure degrades to "no
// replies seen".
func (a *app) pollReplies() map[string]bool {
	if a.cfg.Campaign.IMAPHost == "" {
		log.Printf("[analytics] campaign.imap_host not configured; treating replies as none")
		return nil
	}
	password, err := secrets.Get(secrets.AccountIMAP)
	if err != nil {
		log.Printf("[analytics] %v", err)
		return nil
	}

	contacted := make(map[string]bool, len(a.lastCampaign))
	for _, m := range a.lastCampaign {
		contacted[lower(m.RecipientEmail)] = true
	}

	poller := campaign.NewReplyPoller(campaign.IMAPConfig{
		Addr:     fmt.Sprintf("%s:%d", a.cfg.Campaign.IMAPHost, a.cfg.Campaign.IMAPPort),
		Username: a.cfg.Campaign.Username,
		Password: password,
		Mailbox:  a.cfg.Campaign.Mailbox,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	replies, err := poller.FetchReplies(ctx, a.lastSentAt, contacted)
	if err != nil {
		log.Printf("[analytics] reply poll: %v", err)
		return nil
	}
	log.Printf("[analytics] replies found: %d", len(replies))
	return replies
}
