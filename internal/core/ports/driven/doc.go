// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the oracle, PDF access, OCR, the three
// persisted knowledge bases, configuration, and tabular output.
package driven
