// Package config reads editor props files and watches them for changes.
//
// A props file is YAML or TOML. Top-level keys are editor props; the
// optional engine section configures the engine loader:
//
//	value: "package main\n"
//	language: go
//	theme: vs-dark
//	width: 100%
//	height: 20
//	options:
//	  lineNumbers: "on"
//	engine:
//	  themeFiles: [themes.yaml]
//
// Relative engine paths are resolved against the directory of the file.
package config
