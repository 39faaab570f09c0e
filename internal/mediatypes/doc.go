// Package mediatypes classifies files by extension.
//
// It has no dependencies beyond the standard library so any package can use
// it without import cycles. The importer uses it to pick images out of
// directories:
//
//	if mediatypes.IsImage(path) {
//	    // queue for import
//	}
package mediatypes
