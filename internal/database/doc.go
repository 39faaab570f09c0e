// Package database stores user preferences in a small SQLite file.
//
// The library index itself is a JSON document managed by package library;
// this database only holds key/value settings such as the focal length
// display mode. It uses github.com/mattn/go-sqlite3 in WAL mode.
//
//	db, err := database.New(ctx, cfg.SettingsPath)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	mode, err := db.GetSetting(ctx, "focal_mode")
package database
