// Package catalog parses the university's class schedule & quota
// pages into typed course, section and schedule records.
//
// The engine is purely computational: it is handed one subject
// page's raw markup and returns records, it never fetches or
// persists anything itself (Client exists alongside it for callers
// that want the fetching half). Parsing the same markup twice yields
// value-identical output; calls are independent and safe to run
// concurrently.
//
// One quirk is inherited from the catalog format: a date & time cell
// that is neither "TBA" nor a recognized meeting pattern degrades to
// a section without schedules instead of failing the row, because
// the live catalog occasionally puts free text in that column and
// the row's enrollment numbers are still worth keeping. The
// degradation is logged so malformed data does not pass for "TBA"
// silently.
package catalog
