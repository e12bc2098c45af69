package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConsumerEffectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "consumer_effects_total", Help: "Side effects completed by each consumer"},
		[]string{"consumer"},
	)
	TransfersRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "transfers_rejected_total", Help: "Accesses rejected because the record was already transferred"},
		[]string{"consumer"},
	)
	RecordsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "records_processed_total", Help: "Records routed through every consumer"},
		[]string{"strategy"},
	)
)

func init() {
	prometheus.MustRegister(ConsumerEffectsTotal, TransfersRejectedTotal, RecordsProcessedTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
