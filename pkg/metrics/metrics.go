package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RoomsCreated counts rooms created since process start.
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipboard_bridge_rooms_created_total",
		Help: "Number of rooms created.",
	})

	// RoomsExpired counts rooms removed by the TTL sweep.
	RoomsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipboard_bridge_rooms_expired_total",
		Help: "Number of rooms removed by the expiry sweep.",
	})

	// MessagesDelivered counts sync messages enqueued to members.
	MessagesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipboard_bridge_messages_delivered_total",
		Help: "Number of sync messages delivered to room members.",
	})

	// MembersPruned counts members dropped after a failed delivery.
	MembersPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipboard_bridge_members_pruned_total",
		Help: "Number of members pruned after failed delivery.",
	})

	// ActiveConnections tracks currently open WebSocket connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clipboard_bridge_active_connections",
		Help: "Number of WebSocket connections currently open.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
