package scraper

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/moatezLita/salesGPT/internal/entity"
)

var socialDomains = []string{"facebook.com", "linkedin.com", "twitter.com", "instagram.com"}

var contentClassHints = []string{"content", "main", "article", "body"}

// Subtrees whose text is never considered visible content.
const strippedSelector = "script, style, nav, footer, iframe, noscript, template"

var nonTextElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

// Extract turns raw markup into a ScrapedSite. It never fails: any field that
// cannot be derived is left at its zero value.
func Extract(markup, baseURL string) entity.ScrapedSite {
	site := entity.ScrapedSite{
		SocialLinks: []string{},
		FinalURL:    baseURL,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return site
	}

	site.Title = degrade("", func() string {
		return normalizeText(doc.Find("title").First().Text())
	})
	site.MetaDescription = degrade("", func() string { return metaDescription(doc) })
	site.SocialLinks = degrade([]string{}, func() []string { return socialLinks(doc, baseURL) })
	site.ContactInfo.Email = degrade[*string](nil, func() *string { return contactEmail(doc) })
	// mainContent strips subtrees from doc, so it runs last.
	site.MainContent = degrade("", func() string { return mainContent(doc) })

	return site
}

func degrade[T any](fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback
		}
	}()
	return fn()
}

func metaDescription(doc *goquery.Document) string {
	if meta := doc.Find(`meta[name="description"], meta[name="Description"]`).First(); meta.Length() > 0 {
		return normalizeText(meta.AttrOr("content", ""))
	}
	social := doc.Find(`meta[property="og:description"], meta[property="twitter:description"], meta[name="twitter:description"]`).First()
	return normalizeText(social.AttrOr("content", ""))
}

func mainContent(doc *goquery.Document) string {
	doc.Find(strippedSelector).Remove()

	parts := collectText(doc.Find("main, article, section"))
	if len(parts) == 0 {
		parts = collectText(doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class := strings.ToLower(s.AttrOr("class", ""))
			for _, hint := range contentClassHints {
				if strings.Contains(class, hint) {
					return true
				}
			}
			return false
		}))
	}
	if len(parts) == 0 {
		parts = collectText(doc.Find("p"))
	}

	return normalizeText(strings.Join(parts, " "))
}

// collectText returns the text of each selected element, skipping elements
// nested inside one that was already collected.
func collectText(sel *goquery.Selection) []string {
	collected := make(map[*html.Node]struct{}, sel.Length())
	var parts []string

	for _, node := range sel.Nodes {
		if hasCollectedAncestor(node, collected) {
			continue
		}
		collected[node] = struct{}{}
		if text := nodeText(node); text != "" {
			parts = append(parts, text)
		}
	}
	return parts
}

func hasCollectedAncestor(node *html.Node, collected map[*html.Node]struct{}) bool {
	for p := node.Parent; p != nil; p = p.Parent {
		if _, ok := collected[p]; ok {
			return true
		}
	}
	return false
}

// nodeText joins every descendant text node with a space so adjacent block
// elements do not run together.
func nodeText(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			if _, skip := nonTextElements[n.Data]; skip {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return normalizeText(b.String())
}

// socialLinks matches by substring, so lookalike hosts such as
// notfacebook.com.example are kept as well.
func socialLinks(doc *goquery.Document, baseURL string) []string {
	base, _ := url.Parse(baseURL)

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		link := href
		if base != nil && !isAbsoluteHTTP(href) {
			if ref, err := url.Parse(href); err == nil {
				link = base.ResolveReference(ref).String()
			}
		}
		lower := strings.ToLower(link)
		for _, domain := range socialDomains {
			if strings.Contains(lower, domain) {
				seen[link] = struct{}{}
				return
			}
		}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// isAbsoluteHTTP reports whether href already carries an http or https
// scheme. Such links are kept exactly as written.
func isAbsoluteHTTP(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// contactEmail returns the first visible text node containing "@".
func contactEmail(doc *goquery.Document) *string {
	var found *string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		switch n.Type {
		case html.ElementNode:
			if _, skip := nonTextElements[n.Data]; skip {
				return false
			}
		case html.TextNode:
			if strings.Contains(n.Data, "@") {
				if text := normalizeText(n.Data); text != "" {
					found = &text
					return true
				}
			}
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	for _, n := range doc.Nodes {
		if walk(n) {
			break
		}
	}
	return found
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
