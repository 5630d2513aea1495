package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dutymanager", Name: "saves_total", Help: "Number of save requests by result."},
		[]string{"result"},
	)
	LoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dutymanager", Name: "loads_total", Help: "Number of load/export requests by result."},
		[]string{"result"},
	)
	BackupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dutymanager", Name: "backups_total", Help: "Number of pre-save backup attempts by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dutymanager", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dutymanager", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SavesTotal)
	reg.MustRegister(LoadsTotal)
	reg.MustRegister(BackupsTotal)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
