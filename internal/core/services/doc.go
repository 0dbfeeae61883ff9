// Package services implements the core business logic: fingerprinting,
// adaptive text extraction, pattern learning, the rename ledger,
// boundary detection, and the orchestration pipeline that composes them.
package services
