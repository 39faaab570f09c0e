// Package logging provides a simple leveled logging interface for phototag.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable (or
// DEBUG=1) and may be overridden at runtime with SetLevel. Output goes to
// stderr so command output on stdout stays machine readable.
package logging
