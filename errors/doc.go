// Package errors provides the structured error type used across skeletons.
//
// Every failure surfaced by the runtime is an *AppError carrying a
// machine-readable ErrorCode. Configuration errors (unknown stage kinds,
// invalid worker counts, unwired stages) are flagged Fatal: the library
// returns them, and front-ends such as the benchmark CLI terminate on them.
package errors
