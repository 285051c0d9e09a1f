/*
Package ports defines the driven ports (interfaces) of the finder.

The derivation core has no I/O of its own; the only outward dependency is the
Journal, which records readings for the history command and the HTTP API.
Implementations live under pkg/adapters and are verified with RunJournalContract.
*/
package ports
