package dl

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	callResultOK     = "ok"
	callResultStatus = "status"
	callResultFault  = "fault"
)

var (
	// foreignCallTotal 外部调用次数（按符号与结果分类）
	foreignCallTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dl",
			Name:      "foreign_call_total",
			Help:      "Total number of foreign calls into loaded libraries by symbol and result",
		},
		[]string{"symbol", "result"}, // ok, status, fault
	)

	// foreignCallDuration 外部调用耗时
	foreignCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dl",
			Name:      "foreign_call_duration_seconds",
			Help:      "Duration of foreign calls into loaded libraries in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14), // 50µs ~ 0.4s
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(
		foreignCallTotal,
		foreignCallDuration,
	)
}

// recordForeignCall 记录一次外部调用
func recordForeignCall(symbol, result string, elapsed time.Duration) {
	foreignCallTotal.WithLabelValues(symbol, result).Inc()
	foreignCallDuration.WithLabelValues(symbol).Observe(elapsed.Seconds())
}
