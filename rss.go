package postseries

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// writeRSS lists posts in reading order. Posts may carry an optional
// "date" key (YYYY-MM-DD) in their metadata block.
func writeRSS(w io.Writer, site views.SiteConfig, posts []content.Summary) error {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, ok := postDate(p); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := views.PostURL(site, p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Subtitle,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        views.IndexURL(site),
			Description: site.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}

// postDate reads the optional "date" metadata key. YAML may hand it over as
// a timestamp or as a plain string.
func postDate(p content.Summary) (time.Time, bool) {
	switch d := p.Extra["date"].(type) {
	case time.Time:
		return d, true
	case string:
		t, err := time.Parse("2006-01-02", d)
		return t, err == nil
	}
	return time.Time{}, false
}
