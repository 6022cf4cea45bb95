// Package page reads speedrun.com leaderboard pages and exposes their
// leaderboard table as a leaderboard.TableSource backed by the parsed DOM.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	speedrunHost = "www.speedrun.com"

	DefaultTimeout = 10 * time.Second

	leaderboardSelector = "#leaderboarddiv"
	userNameSelector    = "#navbar-username .username"
)

var (
	ErrBadLink       = errors.New("could not parse link")
	ErrForeignHost   = errors.New("link must use host " + speedrunHost)
	ErrNoLeaderboard = errors.New("no leaderboard table found")
)

// Document is a parsed leaderboard page.
type Document struct {
	Link string
	doc  *goquery.Document
}

// Load parses a page from r.
func Load(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// UserName is the display name of the logged-in user, or "" when the page
// was served to a guest.
func (d *Document) UserName() string {
	return d.doc.Find(userNameSelector).First().Text()
}

// Leaderboard returns the first table directly under the leaderboard div
// that has rows. The first row is the header, wherever its section is.
func (d *Document) Leaderboard() (*Table, error) {
	var table *Table
	d.doc.Find(leaderboardSelector).First().ChildrenFiltered("table").EachWithBreak(func(i int, s *goquery.Selection) bool {
		rows := s.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")
		if rows.Length() == 0 {
			return true
		}
		table = &Table{header: rows.First(), rows: rows.Slice(1, rows.Length())}
		return false
	})

	if table == nil {
		return nil, ErrNoLeaderboard
	}
	return table, nil
}

// HTML renders the (possibly augmented) page.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Fetcher downloads leaderboard pages.
type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration
	// Hosts that links may point at. Defaults to speedrun.com.
	Hosts []string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:  http.DefaultClient,
		Timeout: timeout,
		Hosts:   []string{speedrunHost, "speedrun.com"},
	}
}

// ParseLink normalises link to an absolute http(s) URL on one of the allowed
// hosts.
func (f *Fetcher) ParseLink(link string) (*url.URL, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, ErrBadLink
	}

	if u.Scheme == "" {
		u, err = url.Parse("https://" + link)
		if err != nil {
			return nil, ErrBadLink
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrBadLink
	}
	if !slices.Contains(f.Hosts, u.Host) {
		return nil, ErrForeignHost
	}
	return u, nil
}

// Fetch downloads and parses the page at link.
func (f *Fetcher) Fetch(ctx context.Context, link string) (*Document, error) {
	u, err := f.ParseLink(link)
	if err != nil {
		return nil, err
	}

	ctx2, cancel2 := context.WithTimeout(ctx, f.Timeout)
	defer cancel2()

	req, err := http.NewRequestWithContext(ctx2, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned unexpected status %q", u.Host, res.Status)
	}

	d, err := Load(res.Body)
	if err != nil {
		return nil, err
	}
	d.Link = u.String()

	slog.Debug("page fetched", "url", d.Link)

	return d, nil
}

// Title is the page's <title>.
func (d *Document) Title() string {
	return d.doc.Find("title").First().Text()
}
