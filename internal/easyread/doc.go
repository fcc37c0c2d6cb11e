// Package easyread generates easy-read variants of the manual's text
// entries. Every source entry gets a 1:1 easyread- counterpart; short
// labels are copied or emoji-tagged without an API call, longer texts go
// through an LLM rewrite whose readability gain is scored and logged.
package easyread
