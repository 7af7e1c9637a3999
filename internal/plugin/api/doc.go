// Package api provides the Lua API that binding scripts are written against.
//
// Two modules are injected into a script's Lua state, in order:
//
//   - key: runs the prelude that defines the Key type and publishes one
//     Key constant per entry of a key.Table (SUPER, A, H, J, K, L, ...)
//   - bind: installs the global bind(modifiers, keys, command) function
//
// # The Key type
//
// Lua only has structural typing, so the prelude builds a nominal type out
// of a descriptor table whose __index points back at itself:
//
//	Key = {}
//	Key.__index = Key
//
// After the prelude runs, the host captures that exact table. A value is a
// Key only when it is a table whose metatable is the captured descriptor,
// compared by identity, and the descriptor still indexes itself. A table
// that merely has a keyid field is not a Key.
//
// # bind
//
//	bind({SUPER}, A, "cmd")        -- one binding
//	bind({SUPER}, {A, H}, "cmd")   -- two bindings, A then H
//	bind({}, A, function() end)    -- no modifiers, any command value
//
// The keys argument is classified exactly once: a single Key first, and only
// if that fails, a list of Keys. Every element of modifiers and of a keys
// list must be a Key. Any violation raises a Lua error naming the argument
// and element, and no binding from that call is recorded.
//
// Bindings go to the keymap.Registry the module was built with, so each run
// owns its own accumulator.
package api
