package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 案件创建数
	casesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cases_created_total",
			Help: "Total number of cases created",
		},
		[]string{"result"}, // success, failure
	)

	// 相似检索数
	similarityQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_queries_total",
			Help: "Total number of similarity queries",
		},
		[]string{"result"}, // success, failure
	)

	// 理由生成数
	justificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "justifications_generated_total",
			Help: "Total number of justifications generated",
		},
		[]string{"source"}, // generated, fallback
	)

	// 决定提交数
	decisionCommitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decision_commits_total",
			Help: "Total number of decision commit operations",
		},
		[]string{"result"}, // success, partial_failure
	)

	// 案件缓存中未对账的本地补丁数
	pendingLocalPatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_local_patches",
			Help: "Number of local case patches not yet reconciled with the server",
		},
	)
)

var (
	once sync.Once
)

func init() {
	// 注册指标
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(casesCreatedTotal)
	prometheus.MustRegister(similarityQueriesTotal)
	prometheus.MustRegister(justificationsTotal)
	prometheus.MustRegister(decisionCommitsTotal)
	prometheus.MustRegister(pendingLocalPatches)

	// 注册 Go 运行时指标（只注册一次）
	once.Do(func() {
		// 尝试注册 Go 运行时指标，如果已注册则忽略错误
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordCaseCreated 记录案件创建
func RecordCaseCreated(success bool) {
	if success {
		casesCreatedTotal.WithLabelValues("success").Inc()
	} else {
		casesCreatedTotal.WithLabelValues("failure").Inc()
	}
}

// RecordSimilarityQuery 记录相似检索
func RecordSimilarityQuery(success bool) {
	if success {
		similarityQueriesTotal.WithLabelValues("success").Inc()
	} else {
		similarityQueriesTotal.WithLabelValues("failure").Inc()
	}
}

// RecordJustification 记录理由生成来源
// source 取 generated 或 fallback
func RecordJustification(source string) {
	justificationsTotal.WithLabelValues(source).Inc()
}

// RecordDecisionCommit 记录决定提交结果
func RecordDecisionCommit(partialFailure bool) {
	if partialFailure {
		decisionCommitsTotal.WithLabelValues("partial_failure").Inc()
	} else {
		decisionCommitsTotal.WithLabelValues("success").Inc()
	}
}

// UpdatePendingLocalPatches 更新未对账补丁数指标
func UpdatePendingLocalPatches(count int) {
	pendingLocalPatches.Set(float64(count))
}
