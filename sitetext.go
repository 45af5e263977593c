// Package sitetext provides a bounded-concurrency site crawler that
// discovers pages reachable from a seed URL within one domain, extracts
// their textual content, and persists one text artifact per page.
// Visited URLs are recorded durably so re-runs resume without duplicate
// work.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, pdf/).
package sitetext
