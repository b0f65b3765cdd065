package postseries

import (
	"encoding/xml"
	"io"

	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func writeSitemap(w io.Writer, site views.SiteConfig, posts []content.Summary) error {
	urls := make([]sitemapURL, 0, len(posts)+1)
	urls = append(urls, sitemapURL{Loc: views.IndexURL(site)})
	for _, p := range posts {
		loc := sitemapURL{Loc: views.PostURL(site, p.Slug)}
		if t, ok := postDate(p); ok {
			loc.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, loc)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
