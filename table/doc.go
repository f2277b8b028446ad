// Package table exports traces as rows of time and per-trace values, and renders
// those rows as an aligned plain-text table.
package table
