package domain

// ServiceHealth reports the status of one component.
type ServiceHealth struct {
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	LatencyMs     int64   `json:"latency_ms"`
	UptimePercent float64 `json:"uptime_percent"`
	LastChecked   string  `json:"last_checked"`
}

// HealthStatus is the aggregate health payload for /healthz.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// PaymentMetricsSnapshot summarizes payment traffic for the
// GET /v1/metrics/payments endpoint.
type PaymentMetricsSnapshot struct {
	TotalPayments     int64   `json:"total_payments"`
	CompletedPayments int64   `json:"completed_payments"`
	FailedPayments    int64   `json:"failed_payments"`
	RejectedPayments  int64   `json:"rejected_payments"`
	DeclineRate       float64 `json:"decline_rate"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	Period            string  `json:"period"`
}
