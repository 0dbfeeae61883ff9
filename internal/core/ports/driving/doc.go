// Package driving provides interfaces for inbound adapters
// (primary ports). The CLI drives the application through these.
package driving
