package campaign

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPConfig points at the mailbox the campaign was sent from; replies
// from contacted leads land there.
type IMAPConfig struct {
	Addr     string // host:port
	Username string
	Password string
	Mailbox  string
}

// ReplyPoller scans the sender's mailbox for responses from contacted
// leads. It only ever reads unseen mail and marks matched messages as
// seen, so repeated polls don't double-count.
type ReplyPoller struct {
	cfg IMAPConfig
}

func NewReplyPoller(cfg IMAPConfig) *ReplyPoller {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &ReplyPoller{cfg: cfg}
}

// FetchReplies returns the subset of contacted addresses (lowercased)
// that have replied since the cutoff.
func (p *ReplyPoller) FetchReplies(ctx context.Context, since time.Time, contacted map[string]bool) (map[string]bool, error) {
	if p.cfg.Addr == "" {
		return nil, errors.New("imap addr is required")
	}
	if p.cfg.Username == "" || p.cfg.Password == "" {
		return nil, errors.New("imap username/password is required")
	}

	c, err := p.dialAndLogin(ctx)
	if err != nil {
		return nil, err
	}
	defer logoutAndClose(c)

	if _, err := c.Select(p.cfg.Mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return nil, fmt.Errorf("imap select %q: %w", p.cfg.Mailbox, err)
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   since,
	}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	replied := make(map[string]bool)
	if len(uids) == 0 {
		return replied, nil
	}

	uidSet := imap.UIDSetNum(uids...)
	fetchOptions := &imap.FetchOptions{
		UID:      true,
		Envelope: true,
	}

	fetchCmd := c.Fetch(uidSet, fetchOptions)
	defer func() { _ = fetchCmd.Close() }()

	var matched []imap.UID

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}

		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}
		if buf.Envelope == nil {
			continue
		}

		for i := range buf.Envelope.From {
			addr := strings.ToLower(strings.TrimSpace(buf.Envelope.From[i].Addr()))
			if addr == "" || !contacted[addr] {
				continue
			}
			replied[addr] = true
			matched = append(matched, buf.UID)
		}
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}

	if err := markSeen(c, matched); err != nil {
		// replies were still found; surface the flag failure as advisory
		log.Printf("[campaign] mark seen: %v", err)
	}

	return replied, nil
}

func (p *ReplyPoller) dialAndLogin(ctx context.Context) (*imapclient.Client, error) {
	host := p.cfg.Addr
	if h, _, err := net.SplitHostPort(p.cfg.Addr); err == nil {
		host = h
	}

	c, err := imapclient.DialTLS(p.cfg.Addr, &imapclient.Options{
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: host,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	// best-effort close on context cancel
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(p.cfg.Username, p.cfg.Password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return c, nil
}

func markSeen(c *imapclient.Client, uids []imap.UID) error {
	if len(uids) == 0 {
		return nil
	}

	storeFlags := &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}

	cmd := c.Store(imap.UIDSetNum(uids...), storeFlags, nil)
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("imap store add seen: %w", err)
	}
	return nil
}

func logoutAndClose(c *imapclient.Client) {
	if c == nil {
		return
	}
	if err := c.Logout().Wait(); err != nil {
		log.Printf("[campaign] imap logout: %v", err)
	}
	_ = c.Close()
}
