package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	storeOps      *prometheus.HistogramVec
	degradedReads *prometheus.CounterVec
	decodeErrors  *prometheus.CounterVec
	ingested      *prometheus.CounterVec
	ingestErrors  *prometheus.CounterVec
	wsClients     prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		storeOps: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sigboard_store_op_duration_seconds",
				Help:    "Duration of record store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		degradedReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigboard_degraded_reads_total",
				Help: "Reads that degraded to empty/absent because the backend was unavailable",
			},
			[]string{"source"},
		),
		decodeErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigboard_record_decode_errors_total",
				Help: "Stored records that failed to decode and were skipped",
			},
			[]string{"source"},
		),
		ingested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigboard_records_ingested_total",
				Help: "Records applied to the store from the ingest topic",
			},
			[]string{"kind"},
		),
		ingestErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigboard_ingest_errors_total",
				Help: "Ingest messages that failed to decode or apply",
			},
			[]string{"kind"},
		),
		wsClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sigboard_ws_clients",
				Help: "Currently connected WebSocket status clients",
			},
		),
	}
}

// RecordStoreOp records the latency of a record store operation.
func (r *Recorder) RecordStoreOp(op string, seconds float64) {
	r.storeOps.WithLabelValues(op).Observe(seconds)
}

// RecordDegradedRead counts a read that degraded to empty/absent.
func (r *Recorder) RecordDegradedRead(source string) {
	r.degradedReads.WithLabelValues(source).Inc()
}

// RecordDecodeError counts a stored record that could not be decoded.
func (r *Recorder) RecordDecodeError(source string) {
	r.decodeErrors.WithLabelValues(source).Inc()
}

// RecordIngest counts a record applied from the ingest topic.
func (r *Recorder) RecordIngest(kind string) {
	r.ingested.WithLabelValues(kind).Inc()
}

// RecordIngestError counts a failed ingest message.
func (r *Recorder) RecordIngestError(kind string) {
	r.ingestErrors.WithLabelValues(kind).Inc()
}

// WSClientConnected increments the connected WebSocket client gauge.
func (r *Recorder) WSClientConnected() {
	r.wsClients.Inc()
}

// WSClientDisconnected decrements the connected WebSocket client gauge.
func (r *Recorder) WSClientDisconnected() {
	r.wsClients.Dec()
}
