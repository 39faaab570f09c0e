// Command thumbgen repairs the thumbnail cache of a phototag library.
//
// It supports the following operations:
//   - regenerate: Render thumbnails for photos that have none
//   - status: Report how many photos lack a thumbnail
//
// Usage:
//
//	thumbgen <command>
//
// Commands:
//
//	regenerate  Render a thumbnail for every photo whose thumbnail is
//	            missing, empty or was never created because the source
//	            could not be decoded at import time. The library index is
//	            updated for each new thumbnail. Exits non-zero if any
//	            photo still has no thumbnail.
//
//	status      Print how many photos lack a thumbnail.
//
// Environment:
//
//	LIBRARY_DIR - Path to the library directory
//
// Notes:
//
// thumbgen takes the library lock, so it cannot run while phototag is using
// the same library.
package main
