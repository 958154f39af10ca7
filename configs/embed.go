// Package configs provides the embedded configuration template for compcheck.
//
// The template is embedded at build time so `compcheck config init` works
// from source builds and binary releases alike.
//
// Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults (internal/config NewConfig())
//  2. User config (~/.config/compcheck/config.yaml)
//  3. Environment variables (COMPCHECK_*)
package configs

import _ "embed"

// UserConfigTemplate is written by `compcheck config init` to
// ~/.config/compcheck/config.yaml.
//
//go:embed config.example.yaml
var UserConfigTemplate string
