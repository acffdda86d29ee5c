package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir      string `yaml:"data_dir"`
		OutputDir    string `yaml:"output_dir"`
		AnalyticsDir string `yaml:"analytics_dir"`
	} `yaml:"app"`

	Scraper struct {
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		SearchWorkers  int    `yaml:"search_workers"`
		SearchPages    int    `yaml:"search_pages"`
	} `yaml:"scraper"`

	Campaign struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		IMAPHost string `yaml:"imap_host"`
		IMAPPort int    `yaml:"imap_port"`
		Mailbox  string `yaml:"mailbox"`
		Username string `yaml:"username"`
		From     string `yaml:"from"`

		BatchSize      int     `yaml:"batch_size"`
		SendsPerSecond float64 `yaml:"sends_per_second"`
	} `yaml:"campaign"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// FetchTimeout returns the configured per-request timeout, defaulting
// to the scraper contract's 10 seconds.
func (c Config) FetchTimeout() time.Duration {
	if c.Scraper.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}
