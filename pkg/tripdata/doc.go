// Package tripdata loads half-hour bicycle trip counts from delimited text.
//
// A [Table] is read once from its source with [Load] or [Read], each
// bucket-start value is parsed into a [time.Time], and the records are then
// ordered chronologically with a stable sort. Failures are reported with the
// sentinel errors [ErrFileAccess], [ErrSchema] and [ErrParse].
package tripdata
