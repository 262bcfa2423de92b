package sharecraft

import (
	"html"
	"regexp"
	"strings"
)

// Meta tag patterns tolerate attribute order and self-closing style: they
// match any meta tag carrying the identifying property/name attribute.
var (
	ogTitleTag       = regexp.MustCompile(`(?i)<meta\b[^>]*property=["']og:title["'][^>]*>`)
	ogDescriptionTag = regexp.MustCompile(`(?i)<meta\b[^>]*property=["']og:description["'][^>]*>`)
	ogImageTag       = regexp.MustCompile(`(?i)<meta\b[^>]*property=["']og:image["'][^>]*>`)

	twitterTitleTag       = regexp.MustCompile(`(?i)<meta\b[^>]*(?:name|property)=["']twitter:title["'][^>]*>`)
	twitterDescriptionTag = regexp.MustCompile(`(?i)<meta\b[^>]*(?:name|property)=["']twitter:description["'][^>]*>`)
	twitterImageTag       = regexp.MustCompile(`(?i)<meta\b[^>]*(?:name|property)=["']twitter:image["'][^>]*>`)
)

// Rewriter patches social preview metadata into an HTML document using
// targeted pattern substitution. It performs no HTML parsing or validation;
// callers depend only on Rewrite, so the implementation can be swapped for
// a real parser without touching the pipeline.
type Rewriter struct{}

// NewRewriter returns a Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite returns doc with its Open Graph title/description/image tags
// replaced by the override's values. When the document has no twitter:card
// tag, a full set of four Twitter Card tags is inserted immediately before
// </head> (skipped when </head> is absent); otherwise the existing
// twitter:title/description/image tags are replaced in place. Re-running
// Rewrite on its own output replaces the previous values rather than
// duplicating tags.
func (rw *Rewriter) Rewrite(doc string, meta Preview) string {
	title := html.EscapeString(meta.Title)
	description := html.EscapeString(meta.Description)
	imageURL := html.EscapeString(meta.ImageURL)

	doc = ogTitleTag.ReplaceAllLiteralString(doc, `<meta property="og:title" content="`+title+`">`)
	doc = ogDescriptionTag.ReplaceAllLiteralString(doc, `<meta property="og:description" content="`+description+`">`)
	doc = ogImageTag.ReplaceAllLiteralString(doc, `<meta property="og:image" content="`+imageURL+`">`)

	if !strings.Contains(doc, "twitter:card") {
		head := strings.Index(strings.ToLower(doc), "</head>")
		if head == -1 {
			return doc
		}
		block := `<meta name="twitter:card" content="summary_large_image">` + "\n" +
			`<meta name="twitter:title" content="` + title + `">` + "\n" +
			`<meta name="twitter:description" content="` + description + `">` + "\n" +
			`<meta name="twitter:image" content="` + imageURL + `">` + "\n"
		return doc[:head] + block + doc[head:]
	}

	doc = twitterTitleTag.ReplaceAllLiteralString(doc, `<meta name="twitter:title" content="`+title+`">`)
	doc = twitterDescriptionTag.ReplaceAllLiteralString(doc, `<meta name="twitter:description" content="`+description+`">`)
	doc = twitterImageTag.ReplaceAllLiteralString(doc, `<meta name="twitter:image" content="`+imageURL+`">`)
	return doc
}
