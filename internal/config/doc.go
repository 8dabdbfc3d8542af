// Package config provides the anchorfix configuration file: extra button
// class aliases, capability probe overrides, the random-post fallback path
// and the theme scripts loaded by the simulate command.
package config
