package scraper

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// article is one listing entry on a news category page.
type article struct {
	Title   string
	Link    string
	Excerpt string
}

// Headline verbs that separate a company name from the rest of an article
// title ("Moove raises $100M to expand" -> "Moove").
var titleNoise = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+raises?\s+.*`),
	regexp.MustCompile(`(?i)\s+secures?\s+.*`),
	regexp.MustCompile(`(?i)\s+launches?\s+.*`),
	regexp.MustCompile(`(?i)\s+announces?\s+.*`),
	regexp.MustCompile(`:.*`),
}

// cleanCompanyName extracts the likely company name from an article title.
func cleanCompanyName(title string) string {
	for _, re := range titleNoise {
		title = re.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

var sectorKeywords = []struct {
	sector   string
	keywords []string
}{
	{"Fintech", []string{"payment", "fintech", "bank", "wallet", "transfer", "lending", "credit"}},
	{"E-commerce", []string{"ecommerce", "e-commerce", "marketplace", "retail", "shop"}},
	{"Healthtech", []string{"health", "medical", "hospital", "clinic", "pharma", "telemedicine"}},
	{"Edtech", []string{"education", "learning", "school", "tutor", "edtech"}},
	{"Agritech", []string{"farm", "agric", "crop", "agritech"}},
	{"Logistics", []string{"logistics", "delivery", "shipping", "transport"}},
}

// classifySector maps free text to a coarse sector by keyword, first match
// wins in declaration order.
func classifySector(text string) string {
	lower := strings.ToLower(text)
	for _, sk := range sectorKeywords {
		for _, kw := range sk.keywords {
			if strings.Contains(lower, kw) {
				return sk.sector
			}
		}
	}
	return "Other"
}

// parseListing extracts articles from a category listing page. The layout is
// the common WordPress shape both sources use: <article> wrappers with an
// h2/h3 title link and an excerpt div or paragraph.
func parseListing(body []byte) ([]article, error) {
	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var articles []article
	for _, node := range findAll(root, isElement("article")) {
		a := parseArticle(node)
		if a.Title != "" {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

func parseArticle(node *html.Node) article {
	var a article

	heading := findFirst(node, isElement("h2"))
	if heading == nil {
		heading = findFirst(node, isElement("h3"))
	}
	if heading == nil {
		return a
	}
	a.Title = strings.TrimSpace(textOf(heading))
	if link := findFirst(heading, isElement("a")); link != nil {
		a.Link = attr(link, "href")
	}

	excerpt := findFirst(node, hasClass("div", "entry-excerpt"))
	if excerpt == nil {
		excerpt = findFirst(node, hasClass("div", "entry-content"))
	}
	if excerpt == nil {
		excerpt = findFirst(node, isElement("p"))
	}
	if excerpt != nil {
		a.Excerpt = strings.TrimSpace(textOf(excerpt))
	}

	return a
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func hasClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
				continue // nested articles are not a thing on these layouts
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// truncate cuts s to at most max runes. Excerpts carry naira signs and
// accented names, so the cut must land on a rune boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
