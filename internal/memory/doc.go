// Package memory sets the Go soft memory limit from the environment.
//
// Decoding a large photo can briefly need hundreds of megabytes, and an
// import decodes several at once. When phototag runs under a memory cap
// (a container, a systemd slice) the cap can be passed in MEMORY_LIMIT and
// [ConfigureFromEnv] sets GOMEMLIMIT to a share of it, so the garbage
// collector works harder before the process is killed.
//
//	MEMORY_LIMIT=2147483648 MEMORY_RATIO=0.8 phototag import ~/Pictures
//
// An explicit GOMEMLIMIT always wins.
package memory
