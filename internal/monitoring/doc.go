/*
Package monitoring records Prometheus metrics for client requests.

# Metrics

  - pnetwork_requests_total{method,outcome}: completed requests, outcome is
    "ok" or the error kind
  - pnetwork_request_duration_seconds{method}: time from transport call to
    completion
  - pnetwork_response_size_bytes{method}: body size of status-bearing
    responses

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)
	metrics.RecordRequest("GET", "ok", time.Since(start), len(body))
*/
package monitoring
