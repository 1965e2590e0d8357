// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "1.30.0"

// Milestones:
// 1.30.0 - Body survey markers, catalog lookups tagged per system
// 1.20.0 - Star cycling for multi-star systems
// 1.10.0 - Catalog merge of bodies not yet scanned
// 1.0.0  - Habitable-zone ranges from journal star scans
