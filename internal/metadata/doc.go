// Package metadata reads capture date and camera facts from image files.
//
// EXIF is decoded with goexif. The capture date comes from DateTimeOriginal,
// DateTimeDigitized or DateTime, whichever parses first. Numeric facts are
// kept as rationals until converted for storage by Facts.EXIF.
//
// Extraction is best effort: files that cannot be opened or carry no EXIF
// block produce an empty Metadata rather than an error.
package metadata
