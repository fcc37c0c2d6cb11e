// Package i18n implements the per-language texts tables of the manual:
// flat key/value JSON files under content/i18n/<lang>/, the key naming
// conventions (text-, easyread-text-, sectioneli5-, img-) and the
// companion audioFiles mapping. All writes preserve non-ASCII characters
// and use two-space indented, sorted-key JSON.
package i18n
