// Package config provides rule-preset loading for the tug-of-war server.
//
// The config package implements:
//   - Loading named engine.Rules presets from JSON files in a directory
//   - Caching of loaded presets
//   - Validation through engine.ValidateRules
//   - A built-in default used when no "default" preset file exists
//
// Preset Files:
//
// Each file in the config directory holds one preset, named after the file
// ("blitz.json" is the preset "blitz"). A file named "default.json"
// overrides the built-in default that new rooms are created with.
//
// Preset names come from clients, so they are limited to letters, digits,
// hyphen and underscore; any other name is reported as not found without
// touching the filesystem.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.Get("blitz")
//	if errors.Is(err, config.ErrConfigNotFound) {
//		rules = manager.Default()
//	}
package config
