/*
Package observability records validation outcomes.

It provides Prometheus collectors and a structured logging hook that plug
into a registry through registry.Hooks.
*/
package observability
