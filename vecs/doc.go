// Package vecs implements a small interpreter for an R-flavoured vector
// language. Scripts are compiled once and may be run or called concurrently;
// every run gets its own global frame. The language supports:
//   - Atomic vectors (numeric, logical, character) with recycling arithmetic.
//   - Lists, NULL and first-class closures with lexical scoping and `<<-`.
//   - Calls whose arguments are matched by exact label, then by unique
//     prefix, then by position, with `...` collecting the rest.
//   - Default argument expressions evaluated in the callee's frame.
//   - if/else, for, while and repeat with break and next.
//   - Built-ins for math, strings, random draws and apply-style iteration.
//
// Comments begin with `#`. The interpreter enforces a step quota and a
// recursion limit, and reports warnings separately from errors.
package vecs
