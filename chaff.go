// Package chaff detects structural boilerplate across pages of a domain.
// It crawls a small set of pages per domain, builds a structural tree for
// each page, flags nodes whose tag/class signature recurs on two or more
// pages (navigation, footers, widget chrome), and generalizes text that
// varies only in digit runs into template strings like "{count} comments".
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, bloom/).
package chaff
