// Package log creates [log/slog] handlers from command line settings.
package log
