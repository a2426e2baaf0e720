package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutTotal cuenta los checkouts por resultado y paso donde terminaron
	CheckoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkout_total",
		Help: "Checkouts by result and the step where they ended",
	}, []string{"result", "step"})

	// CheckoutDuration mide la duración de la secuencia completa
	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_duration_seconds",
		Help:    "Checkout sequence duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	// CartNoticesTotal cuenta los avisos de stock que emitió el carrito
	CartNoticesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_cart_notices_total",
		Help: "Cart stock notices by kind",
	}, []string{"kind"})

	// CatalogRefreshTotal cuenta los refrescos del catálogo por resultado
	CatalogRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_catalog_refresh_total",
		Help: "Catalog refreshes by result",
	}, []string{"result"})

	// CatalogProducts es el número de productos en el último snapshot
	CatalogProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pos_catalog_products",
		Help: "Products held by the last catalog snapshot",
	})
)
