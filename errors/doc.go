// Package errors provides structured error types for the wasm-boot shim.
//
// Errors are categorized by Phase (where in the boot pipeline the error
// occurred) and Kind (error category). Construction goes through the
// convenience constructors:
//
//	err := errors.Load("read module binary", cause)
//	err := errors.NotFound(errors.PhaseInit, "export", "_start")
//
// All errors implement the standard error interface and support
// errors.Is/As; two *Error values match when phase and kind agree.
package errors
