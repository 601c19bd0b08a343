// Package services contains the core business logic, implementing the
// driving ports in terms of the driven ports.
//
// Every service degrades rather than fails when an optional capability
// (model provider, OCR, PDF tooling) is missing: summaries fall back to
// truncation, tagging to a keyword table, retrieval to substring
// search, and answering to matching excerpts. Hard errors are reserved
// for invalid input and storage failures.
package services
