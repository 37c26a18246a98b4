package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HistogramBuckets = []float64{
	// fast responses
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	// gateway and SMTP round trips
	750, 1000, 1500, 2000, 3000, 5000,
	// slow upstreams
	10000, 15000, 30000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(
			prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
			m.Args,
		)
	case "counter":
		return prometheus.NewCounter(
			prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
		)
	case "histogram_vec":
		return prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets},
			m.Args,
		)
	case "summary_vec":
		return prometheus.NewSummaryVec(
			prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
			m.Args,
		)
	}
	return nil
}

// Business metrics. Collectors are populated when the Prometheus middleware
// registers them; until then the Inc helpers are no-ops.
var WebhookEvents = &Metric{
	ID:          "webhookEvents",
	Name:        "webhook_events_total",
	Description: "Razorpay webhook deliveries partitioned by processing outcome.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var OrdersIssued = &Metric{
	ID:          "ordersIssued",
	Name:        "orders_issued_total",
	Description: "Checkout orders created at the gateway, partitioned by applied promo.",
	Type:        "counter_vec",
	Args:        []string{"promo"},
}

var NotificationsSent = &Metric{
	ID:          "notificationsSent",
	Name:        "notifications_total",
	Description: "Outbound emails partitioned by kind and result.",
	Type:        "counter_vec",
	Args:        []string{"kind", "result"},
}

var businessMetrics = []*Metric{WebhookEvents, OrdersIssued, NotificationsSent}

// Inc increments a registered counter_vec, ignoring unregistered metrics.
func Inc(m *Metric, labels ...string) {
	if m == nil {
		return
	}
	if cv, ok := m.MetricCollector.(*prometheus.CounterVec); ok {
		cv.WithLabelValues(labels...).Inc()
	}
}

const (
	RefererKey = "X-Referer"
)
