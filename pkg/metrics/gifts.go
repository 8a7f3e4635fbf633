package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	RejectReasonImageTooLarge = "image_too_large"
	RejectReasonValidation    = "validation"
)

// GiftMetrics counts gift mutations.
type GiftMetrics struct {
	created  prometheus.Counter
	toggled  prometheus.Counter
	deleted  prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewGiftMetrics registers the gift counters on the provided registerer.
func NewGiftMetrics(reg prometheus.Registerer) *GiftMetrics {
	if reg == nil {
		return &GiftMetrics{}
	}
	m := &GiftMetrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wishlist_gifts_created_total",
			Help: "Gifts persisted.",
		}),
		toggled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wishlist_gifts_toggled_total",
			Help: "Done toggles applied.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wishlist_gifts_deleted_total",
			Help: "Delete requests served.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wishlist_gifts_rejected_total",
			Help: "Create requests rejected before persistence.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.created, m.toggled, m.deleted, m.rejected)
	return m
}

func (g *GiftMetrics) IncCreated() {
	if g == nil || g.created == nil {
		return
	}
	g.created.Inc()
}

func (g *GiftMetrics) IncToggled() {
	if g == nil || g.toggled == nil {
		return
	}
	g.toggled.Inc()
}

func (g *GiftMetrics) IncDeleted() {
	if g == nil || g.deleted == nil {
		return
	}
	g.deleted.Inc()
}

// IncRejected counts a create that never reached the store.
func (g *GiftMetrics) IncRejected(reason string) {
	if g == nil || g.rejected == nil {
		return
	}
	g.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}
