// Package infra holds the adapters behind the core interfaces: the Paho
// plan publisher, the Prometheus and InfluxDB sinks, the zerolog logger and
// the Sentry monitor. Nothing under core imports these packages.
package infra
