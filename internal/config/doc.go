// Package config defines the eksail.yaml schema, applies defaults, derives
// the per-zone subnet layout, and validates everything locally before any
// AWS call is made.
package config
