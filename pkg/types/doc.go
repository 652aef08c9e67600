// Package types defines the Book record, the patch structure for partial
// updates, aggregate statistics, configuration, and the standard errors
// shared by the bibliotek storage and service layers.
package types
