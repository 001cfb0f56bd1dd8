// Package translator lowers legacy CPU instructions onto the optical
// substrate.
//
// Lowering takes one of four paths. A mnemonic with a native template
// becomes exactly that template. A mnemonic with a translated template
// becomes that template too, but is reported as translated. A mnemonic
// with a registered decomposition is rewritten into primitive
// instructions, each of which reuses an existing template, so the
// decomposition never introduces timing of its own. Anything else
// becomes a single generic fallback operation whose execution time is
// deliberately pessimistic.
//
// 64-bit instructions are lowered as their 32-bit form with the lane
// count of every result multiplied by Profile.WideLaneScale. Operand
// width is modeled only as extra lanes, never as extra time.
//
// All tables are fixed when a Translator is built. A Translator is safe
// for concurrent use.
package translator
