package sharecraft

import "strings"

// socialCrawlerSignatures identify the link-preview fetchers run by social
// platforms. Matching is a case-insensitive substring check against the
// request's User-Agent.
var socialCrawlerSignatures = []string{
	"facebookexternalhit",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
	"slackbot",
	"telegrambot",
	"discord",
	"discordbot",
	"pinterest",
	"googlebot",
}

// IsSocialCrawler reports whether userAgent belongs to a social platform's
// link-preview crawler. An empty User-Agent is never a crawler.
func IsSocialCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, sig := range socialCrawlerSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}
