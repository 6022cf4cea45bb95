package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porjo/srdiff/internal/leaderboard"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	f, err := os.Open("testdata/leaderboard.html")
	require.NoError(t, err)
	defer f.Close()

	d, err := Load(f)
	require.NoError(t, err)
	return d
}

func TestDocumentLeaderboard(t *testing.T) {
	d := loadFixture(t)
	assert.Equal(t, "bob", d.UserName())

	table, err := d.Leaderboard()
	require.NoError(t, err)

	assert.Equal(t, []string{"Rank", "Player", "Time", "Real Time", "Platform"}, table.HeaderCells())
	rows := table.DataRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"3", "carol", "1h 02m 00s", "", "Switch"}, rows[2])
}

func TestDocumentNoLeaderboard(t *testing.T) {
	d, err := Load(strings.NewReader(`<html><body><div id="leaderboarddiv"><p>loading</p></div></body></html>`))
	require.NoError(t, err)

	_, err = d.Leaderboard()
	assert.ErrorIs(t, err, ErrNoLeaderboard)
	assert.Equal(t, "", d.UserName())
}

func TestDocumentSkipsEmptyTables(t *testing.T) {
	d, err := Load(strings.NewReader(`<div id="leaderboarddiv"><table></table><table>
<tr><th>Player</th><th>Time</th></tr>
<tr><td>a</td><td>1m 02s</td></tr>
</table></div>`))
	require.NoError(t, err)

	table, err := d.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, []string{"Player", "Time"}, table.HeaderCells())
	assert.Equal(t, [][]string{{"a", "1m 02s"}}, table.DataRows())
}

func TestDocumentHeadAndBodySections(t *testing.T) {
	d, err := Load(strings.NewReader(`<div id="leaderboarddiv"><table>
<thead><tr><th>Rank</th><th>Player</th><th>Time</th></tr></thead>
<tbody>
<tr><td>1</td><td>a</td><td>1m 00s</td></tr>
<tr><td>2</td><td>b</td><td>1m 03s</td></tr>
</tbody>
</table></div>`))
	require.NoError(t, err)

	table, err := d.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, []string{"Rank", "Player", "Time"}, table.HeaderCells())
	assert.Equal(t, [][]string{
		{"1", "a", "1m 00s"},
		{"2", "b", "1m 03s"},
	}, table.DataRows())

	b, err := leaderboard.Attach(table, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rank", "Player", "Time", leaderboard.DiffHeader}, table.HeaderCells())
	assert.Equal(t, "+0h 00m 03s ", table.DataRows()[1][b.DiffColumn()])
}

func TestTableAugment(t *testing.T) {
	d := loadFixture(t)
	table, err := d.Leaderboard()
	require.NoError(t, err)

	b, err := leaderboard.Attach(table, d.UserName())
	require.NoError(t, err)
	assert.Equal(t, 2, b.TimeColumn())
	assert.Equal(t, 1, b.Baseline())

	g := table.Grid()
	assert.Equal(t, leaderboard.Cell{Text: leaderboard.DiffHeader, Style: leaderboard.StyleHeader}, g.Header[3])
	assert.Equal(t, "Real Time", g.Header[4].Text)
	assert.Equal(t, leaderboard.Cell{Text: "-0h 00m 04s 880ms", Style: leaderboard.StyleAhead}, g.Cell(0, 3))
	assert.Equal(t, leaderboard.Cell{Text: leaderboard.BaselineMarker, Style: leaderboard.StyleBaseline}, g.Cell(1, 3))
	assert.Equal(t, leaderboard.Cell{Text: "+0h 01m 55s 000ms", Style: leaderboard.StyleBehind}, g.Cell(2, 3))

	html, err := d.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<td style="color: gold">-/+</td>`)
	assert.Contains(t, html, `<td style="color: green">-0h 00m 04s 880ms</td>`)

	require.NoError(t, b.Activate(0))
	g = table.Grid()
	assert.Equal(t, leaderboard.StyleBaseline, g.Cell(0, 3).Style)
	assert.Equal(t, "+0h 00m 04s 880ms", g.Cell(1, 3).Text)
}

func TestTableInsertColumnAtEnd(t *testing.T) {
	d, err := Load(strings.NewReader(`<div id="leaderboarddiv"><table>
<tr><th>Player</th><th>Time</th></tr>
<tr><td>a</td><td>1m</td></tr>
</table></div>`))
	require.NoError(t, err)

	table, err := d.Leaderboard()
	require.NoError(t, err)

	table.InsertColumn(2)
	table.SetCell(0, 2, "x", leaderboard.StyleBehind)

	assert.Equal(t, []string{"a", "1m", "x"}, table.DataRows()[0])
	assert.Len(t, table.HeaderCells(), 3)
}

func TestParseLink(t *testing.T) {
	f := NewFetcher(DefaultTimeout)

	u, err := f.ParseLink("www.speedrun.com/celeste")
	require.NoError(t, err)
	assert.Equal(t, "https://www.speedrun.com/celeste", u.String())

	_, err = f.ParseLink("https://example.com/celeste")
	assert.ErrorIs(t, err, ErrForeignHost)

	_, err = f.ParseLink("http://[::1")
	assert.ErrorIs(t, err, ErrBadLink)

	_, err = f.ParseLink("ftp://www.speedrun.com/celeste")
	assert.ErrorIs(t, err, ErrBadLink)
}

func TestFetch(t *testing.T) {
	fixture, err := os.ReadFile("testdata/leaderboard.html")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/celeste" {
			http.NotFound(w, r)
			return
		}
		w.Write(fixture)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	f := &Fetcher{Client: srv.Client(), Timeout: time.Second, Hosts: []string{u.Host}}

	d, err := f.Fetch(context.Background(), srv.URL+"/celeste")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/celeste", d.Link)
	assert.Equal(t, "bob", d.UserName())

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status")
}
