// Package engine holds the context threaded through every abstract
// operation: the choice oracle, the choice bound and the logger.
//
// Three kinds of failure are kept apart:
//
//   - usage errors (undefined join, unsupported operator, bad tag) panic
//     with *UsageError and are never recovered by the engine;
//   - infeasible paths call Context.Cancel, which hands control to the
//     oracle and does not return;
//   - program faults (division by zero, null dereference) panic with
//     *Fault so the driver can report them.
//
// Imprecision is not a failure. Operators that cannot narrow simply log at
// warn level and leave their operands untouched.
package engine
