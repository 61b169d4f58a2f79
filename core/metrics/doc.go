// Package metrics defines the interfaces used to record computed production
// plans. Concrete sinks (Prometheus, InfluxDB) live in infra/metrics and
// register themselves with the factory so they can be selected from
// configuration; several configured sinks are combined in a MultiSink.
package metrics
