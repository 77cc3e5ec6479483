// Package domain contains the core business entities for the
// indiainflation export pipeline: calendar months, index series,
// regional breakdowns, dataset exports and their normalized views.
// Domain types have no dependencies on adapters or services.
package domain
