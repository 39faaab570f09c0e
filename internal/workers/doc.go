/*
Package workers sizes worker pools from the CPUs actually available to the
process.

Go sets GOMAXPROCS from container CPU limits, while runtime.NumCPU reports the
host. Sizing from GOMAXPROCS keeps an import on a 2-CPU container from starting
dozens of decoders.

	n := workers.ForMixed(8) // import: read, decode, resize, encode, write

Set IMPORT_WORKERS to pin the count:

	IMPORT_WORKERS=2 phototag import ~/Pictures

The override is still capped by the limit passed in.
*/
package workers
