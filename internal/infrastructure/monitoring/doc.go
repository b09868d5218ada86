/*
Package monitoring provides Prometheus metrics for the home views service.

# Overview

Each process builds one Metrics value on a private registry, so tests and
multiple instances never collide on the global default registry. A nil
*Metrics is valid and records nothing.

# Metrics

  - home_background_resolutions_total{source}: override, current-theme, default-theme, placeholder
  - home_background_decode_errors_total
  - home_views_sessions_total{outcome}: committed, discarded
  - home_views_repairs_total
  - home_views_commit_errors_total
  - home_views_active
  - home_config_read_errors_total{key_kind}
  - home_notifications_total{method,status}

# Usage

	metrics := monitoring.NewMetrics()
	http.Handle("/metrics", metrics.Handler())
	metrics.ObserveResolution("placeholder")
*/
package monitoring
