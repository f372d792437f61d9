// Package spreadsheet opens xlsx workbooks, keeps their drawing layer
// consistent when rows or columns are inserted or removed, and writes them
// back.
package spreadsheet

import "log/slog"

// Options configures how a workbook is opened.
type Options struct {
	// InspectEmbeddings specifies whether OLE embeddings are opened to list
	// their streams and properties. If nil, defaults to true.
	InspectEmbeddings *bool
	// Logger receives parse warnings and edit summaries.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldInspectEmbeddings returns whether to inspect OLE embeddings.
func (o Options) ShouldInspectEmbeddings() bool {
	if o.InspectEmbeddings != nil {
		return *o.InspectEmbeddings
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
