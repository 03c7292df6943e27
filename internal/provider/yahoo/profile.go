package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// fillFromProfile scrapes the website profile page for the fields the
// quote API left blank. Best effort: scrape failures leave the
// snapshot as is.
func (c *Client) fillFromProfile(ctx context.Context, snapshot *contracts.Snapshot) {
	url := fmt.Sprintf("%s/quote/%s/profile", c.webURL, snapshot.Symbol)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", snapshot.Symbol).Debug("Profile page unavailable")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", snapshot.Symbol).Debug("Profile page parse failed")
		return
	}

	if snapshot.Name == "" {
		name := strings.TrimSpace(doc.Find("h1").First().Text())
		// The page title is "Company Name (SYMBOL)".
		if idx := strings.LastIndex(name, "("); idx > 0 {
			name = strings.TrimSpace(name[:idx])
		}
		snapshot.Name = name
	}
	if snapshot.Sector == "" {
		doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if strings.Contains(href, "/sectors/") {
				snapshot.Sector = strings.TrimSpace(s.Text())
				return false
			}
			return true
		})
	}
}
