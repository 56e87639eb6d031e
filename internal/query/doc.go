// Package query collects tasks across TickTick projects and filters
// them in memory.
//
// The TickTick Open API has no cross-project task listing and no
// server-side search, so the query and search tools fetch every
// project's data set and run the filter pipeline locally. Filters are
// applied in a fixed order (status, relative dates, tags, keywords)
// and the output preserves fetch order.
package query
