/*
Package observability connects engine lifecycle hooks to monitoring backends.

Metrics binds Prometheus collectors to domain.LifecycleHooks; LoggingHooks writes
the same lifecycle as structured log records. Combine merges several hook sets so
both can be installed on one engine.
*/
package observability
