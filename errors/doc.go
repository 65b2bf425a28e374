/*
Package errors implements the error values used by suitdrop contracts and the
runtime.

Each returned error should be rooted in one of the registered errors. Generic
errors are declared in this package, each contract extension registers its own
within a code range reserved for it:

	x/claim    1100 - 1109
	x/redeem   1200 - 1209
	x/token    1300 - 1309
	x/nft      1400 - 1409
	runtime    1500 - 1509

Use ErrXyz.New or Wrap at the point of creation so that a stack trace is
attached. Only the most inner wrap records the stack trace.

Formatting an error with %+v prints the stack trace, %s only the message.

Use Field and AppendField to build validation errors that can be later
inspected with FieldErrors.
*/
package errors
