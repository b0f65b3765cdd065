package views

// SiteConfig holds the site-wide settings every view needs.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL, canonical origin without the base path
	BasePath    string // BASE_PATH, e.g. "/diy-firestore"
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
