package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/postseries/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// IndexPath is the site-relative path of the listing page.
func IndexPath(site SiteConfig) string {
	return strings.TrimRight(site.BasePath, "/") + "/"
}

// PostPath is the site-relative path of a post page.
func PostPath(site SiteConfig, slug string) string {
	return strings.TrimRight(site.BasePath, "/") + "/posts/" + url.PathEscape(slug) + "/"
}

// PostURL is the absolute URL of a post page.
func PostURL(site SiteConfig, slug string) string {
	return BuildURL(site.URL, site.BasePath, "posts", slug)
}

// IndexURL is the absolute URL of the listing page.
func IndexURL(site SiteConfig) string {
	return BuildURL(site.URL, site.BasePath, "/")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using site values.
func WebsiteJsonLD(site SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      IndexURL(site),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD produces a Schema.org Article JSON-LD block for one post of
// the series.
func ArticleJsonLD(site SiteConfig, post content.Summary) string {
	postURL := PostURL(site, post.Slug)
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": post.Title,
		"position": post.Position(),
		"url":      postURL,
		"isPartOf": map[string]string{
			"@type": "CreativeWorkSeries",
			"name":  site.Name,
			"url":   IndexURL(site),
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Subtitle != "" {
		data["description"] = post.Subtitle
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
