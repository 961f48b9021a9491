// Package internaldefs holds the metric definitions shared by the
// exporters. It exists so exporter packages agree on names and bucket
// layout without duplicating tables.
package internaldefs

import (
	fleetadmin "github.com/fleetops/fleetadmin"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   fleetadmin.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   fleetadmin.MetricID
	Name string
	Help string
}

// CounterDefs is the full exported counter table.
var CounterDefs = []CounterDef{
	{ID: fleetadmin.MetricLoginSuccess, Name: "fleetadmin_login_success_total", Help: "Successful login attempts."},
	{ID: fleetadmin.MetricLoginFailure, Name: "fleetadmin_login_failure_total", Help: "Login attempts rejected by the API."},
	{ID: fleetadmin.MetricRegisterSuccess, Name: "fleetadmin_register_success_total", Help: "Successful registrations."},
	{ID: fleetadmin.MetricRegisterFailure, Name: "fleetadmin_register_failure_total", Help: "Registrations rejected by the API."},
	{ID: fleetadmin.MetricLogout, Name: "fleetadmin_logout_total", Help: "Logout operations."},
	{ID: fleetadmin.MetricValidationRejected, Name: "fleetadmin_validation_rejected_total", Help: "Credential submissions rejected before any network call."},
	{ID: fleetadmin.MetricCacheHit, Name: "fleetadmin_cache_hit_total", Help: "Reads served from the query cache."},
	{ID: fleetadmin.MetricCacheMiss, Name: "fleetadmin_cache_miss_total", Help: "Reads that went to the network."},
	{ID: fleetadmin.MetricCacheInvalidation, Name: "fleetadmin_cache_invalidation_total", Help: "Cache family invalidations after mutations."},
	{ID: fleetadmin.MetricCacheCleared, Name: "fleetadmin_cache_cleared_total", Help: "Whole-cache clears on login and logout."},
	{ID: fleetadmin.MetricCacheStoreError, Name: "fleetadmin_cache_store_error_total", Help: "Cache backend failures."},
	{ID: fleetadmin.MetricRequestRetry, Name: "fleetadmin_request_retry_total", Help: "Retried request attempts."},
	{ID: fleetadmin.MetricRequestFailure, Name: "fleetadmin_request_failure_total", Help: "Requests that exhausted their attempts."},
	{ID: fleetadmin.MetricMutationSuccess, Name: "fleetadmin_mutation_success_total", Help: "Applied create/update/delete mutations."},
}

// HistogramDefs is the full exported histogram table.
var HistogramDefs = []HistogramDef{
	{ID: fleetadmin.MetricRequestLatency, Name: "fleetadmin_request_latency_ms", Help: "Request latency distribution."},
}

// HistogramBoundSuffix labels the fixed bucket bounds, in milliseconds.
var HistogramBoundSuffix = [8]string{"5", "10", "25", "50", "100", "250", "500", "inf"}

// NormalizeBuckets pads or truncates a snapshot's bucket slice to the
// fixed bucket count.
func NormalizeBuckets(buckets []uint64) []uint64 {
	out := make([]uint64, len(HistogramBoundSuffix))
	copy(out, buckets)
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative "le"
// counts.
func CumulativeBuckets(buckets []uint64) []uint64 {
	out := make([]uint64, len(buckets))
	var total uint64
	for i, v := range buckets {
		total += v
		out[i] = total
	}
	return out
}
