package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eduncan911/podcast"
	"github.com/labstack/echo/v4"

	"github.com/porjo/srdiff/internal/leaderboard"
	"github.com/porjo/srdiff/internal/page"
)

// Request is the query shared by every endpoint.
type Request struct {
	Link     string
	User     string
	Baseline int
	// HasBaseline is false when the query leaves the baseline to the user's
	// row or the first row.
	HasBaseline bool
}

// Augmented is a fetched page with its leaderboard diffed.
type Augmented struct {
	Doc   *page.Document
	Table *page.Table
	Board *leaderboard.Board
}

func parseRequest(c echo.Context) (Request, error) {
	req := Request{
		Link: c.QueryParam("link"),
		User: c.QueryParam("user"),
	}

	if req.Link == "" {
		return req, echo.NewHTTPError(http.StatusBadRequest, "link is required")
	}

	if b := c.QueryParam("baseline"); b != "" {
		n, err := strconv.Atoi(b)
		if err != nil {
			return req, echo.NewHTTPError(http.StatusBadRequest, "baseline must be a row number")
		}
		req.Baseline = n
		req.HasBaseline = true
	}

	return req, nil
}

func (s *Server) augment(c echo.Context) (*Augmented, error) {
	req, err := parseRequest(c)
	if err != nil {
		return nil, err
	}

	slog.Debug("augment", "link", req.Link, "user", req.User, "baseline", req.Baseline)

	doc, err := s.fetcher.Fetch(c.Request().Context(), req.Link)
	switch {
	case errors.Is(err, page.ErrBadLink), errors.Is(err, page.ErrForeignHost):
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return nil, echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("there was an error fetching the leaderboard: %s", err))
	}

	table, err := doc.Leaderboard()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user := req.User
	if user == "" {
		user = doc.UserName()
	}

	board, err := leaderboard.Attach(table, user)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if req.HasBaseline {
		if err := board.Activate(req.Baseline); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return &Augmented{Doc: doc, Table: table, Board: board}, nil
}

// DiffHandler returns the leaderboard page with the Difference column added.
func (s *Server) DiffHandler(c echo.Context) error {
	a, err := s.augment(c)
	if err != nil {
		return err
	}

	html, err := a.Doc.HTML()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

// DiffJSONHandler returns the augmented leaderboard as a grid.
func (s *Server) DiffJSONHandler(c echo.Context) error {
	a, err := s.augment(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, struct {
		Link       string            `json:"link"`
		TimeColumn int               `json:"timeColumn"`
		Baseline   int               `json:"baseline"`
		Table      *leaderboard.Grid `json:"table"`
	}{
		Link:       a.Doc.Link,
		TimeColumn: a.Board.TimeColumn(),
		Baseline:   a.Board.Baseline(),
		Table:      a.Table.Grid(),
	})
}

// FeedHandler returns the leaderboard runs as an RSS feed, one item per run.
func (s *Server) FeedHandler(c echo.Context) error {
	a, err := s.augment(c)
	if err != nil {
		return err
	}

	feed, err := buildFeed(a)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=UTF-8")
	return feed.Encode(c.Response().Writer)
}

func buildFeed(a *Augmented) (*podcast.Podcast, error) {
	g := a.Table.Grid()
	timeCol, diffCol := a.Board.TimeColumn(), a.Board.DiffColumn()
	playerCol, hasPlayer := leaderboard.LocatePlayerColumn(g)

	title := strings.TrimSpace(a.Doc.Title())
	if title == "" {
		title = "unknown leaderboard"
	}

	var baselineName string
	if hasPlayer {
		baselineName = strings.TrimSpace(g.Cell(a.Board.Baseline(), playerCol).Text)
	}
	if baselineName == "" {
		baselineName = fmt.Sprintf("run %d", a.Board.Baseline()+1)
	}

	now := time.Now()
	p := podcast.New(
		title,
		a.Doc.Link,
		"Time differences against "+baselineName,
		&now, // pubDate
		&now, // lastBuildDate
	)

	for i := range g.Rows {
		runTime := strings.TrimSpace(g.Cell(i, timeCol).Text)
		if runTime == "" {
			continue
		}

		name := fmt.Sprintf("run %d", i+1)
		if hasPlayer {
			if n := strings.TrimSpace(g.Cell(i, playerCol).Text); n != "" {
				name = n
			}
		}

		desc := runTime
		if diff := strings.TrimSpace(g.Cell(i, diffCol).Text); diff != "" {
			desc += " (" + diff + ")"
		}

		item := podcast.Item{
			Title:       fmt.Sprintf("%d. %s", i+1, name),
			Link:        a.Doc.Link,
			Description: desc,
			PubDate:     &now,
		}

		if _, err := p.AddItem(item); err != nil {
			return nil, fmt.Errorf("error adding item: %w", err)
		}
	}

	slog.Info("feed", "url", a.Doc.Link, "item count", len(p.Items))

	return &p, nil
}
