package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "peerrank", Name: "submissions_total", Help: "Rating submissions",
	}, []string{"result"}) // ok|error

	LeaderboardReads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peerrank", Name: "leaderboard_reads_total", Help: "Leaderboard requests",
	})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peerrank", Name: "leaderboard_cache_hits_total", Help: "Leaderboard cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peerrank", Name: "leaderboard_cache_misses_total", Help: "Leaderboard cache misses",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peerrank", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "peerrank", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	LedgerSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "peerrank", Name: "ledger_rows", Help: "Live rating rows",
	})
)

func init() {
	prometheus.MustRegister(Submissions, LeaderboardReads, CacheHits, CacheMisses, HandlerErrors, DBPing, LedgerSize)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
