// Package file provides the TOML-backed configuration store.
// Configuration lives in ~/.permscope/config.toml and is exposed
// through the driven.ConfigStore port with dot-notation keys.
package file
