// Package stores persists OpBench run history. It provides SQLite-based
// storage with WAL mode and embedded migrations, recording one row per
// chain execution: which suite ran, how it ended, how many operations the
// chain stepped through, and where the log artifacts went.
package stores
