package sharecraft

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	crawlerRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharecraft_crawler_requests_total",
		Help: "Page requests identified as social link-preview crawlers.",
	})

	rewrittenResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharecraft_rewritten_responses_total",
		Help: "Origin responses whose preview metadata was rewritten.",
	})

	resolveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharecraft_resolve_failures_total",
		Help: "Override lookups that failed and fell open to the origin response.",
	})

	originErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharecraft_origin_errors_total",
		Help: "Failed fetches of the content origin.",
	})
)
