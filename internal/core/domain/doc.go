// Package domain contains the core business entities and errors for
// docvault. It has no dependencies on adapters or infrastructure.
package domain
