package sharecraft

import "testing"

func TestIsSocialCrawler(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want bool
	}{
		{"facebook", "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)", true},
		{"twitter", "Twitterbot/1.0", true},
		{"twitter lowercase", "twitterbot/1.0", true},
		{"twitter uppercase", "TWITTERBOT", true},
		{"linkedin", "LinkedInBot/1.0 (compatible; Mozilla/5.0)", true},
		{"whatsapp", "WhatsApp/2.19.81 A", true},
		{"slack", "Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)", true},
		{"telegram", "TelegramBot (like TwitterBot)", true},
		{"discord", "Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)", true},
		{"pinterest", "Pinterest/0.2 (+http://www.pinterest.com/)", true},
		{"google", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"chrome", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", false},
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:122.0) Gecko/20100101 Firefox/122.0", false},
		{"curl", "curl/8.4.0", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSocialCrawler(tt.ua); got != tt.want {
				t.Errorf("IsSocialCrawler(%q) = %v, want %v", tt.ua, got, tt.want)
			}
		})
	}
}
