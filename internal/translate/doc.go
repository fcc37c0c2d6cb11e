// Package translate generates target-language entries for the manual's
// texts tables. The hosted translator walks entries in page order and keeps
// a sliding window of recent translations as prompt context so terminology
// stays consistent across a run. An offline term-table translator exists
// for dry runs and environments without API access.
package translate
