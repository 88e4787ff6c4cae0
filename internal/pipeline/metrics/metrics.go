package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for workflow operations.
type Metrics struct {
	Applications   prometheus.Counter
	Interviews     prometheus.Counter
	Approvals      prometheus.Counter
	Rejections     prometheus.Counter
	PostingsClosed prometheus.Counter
}

// New creates and registers all workflow metrics.
func New() *Metrics {
	return &Metrics{
		Applications: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentgate_applications_total",
			Help: "Total number of accepted job applications",
		}),
		Interviews: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentgate_interviews_total",
			Help: "Total number of candidacies advanced to interviewed",
		}),
		Approvals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentgate_approvals_total",
			Help: "Total number of approved candidacies",
		}),
		Rejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentgate_rejections_total",
			Help: "Total number of rejected candidacies",
		}),
		PostingsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentgate_postings_closed_total",
			Help: "Total number of postings closed by an approval",
		}),
	}
}
