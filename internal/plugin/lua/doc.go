// Package lua provides the Lua runtime that binding scripts run in.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Named chunk execution for readable diagnostics
//   - Execution timeouts
//   - Lua to Go value conversion for reporting
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(
//	    lua.WithExecutionTimeout(5 * time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "user.lua", "example"); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors from a chunk are returned as *ScriptError carrying the chunk name.
//
// # Sandbox
//
// The Sandbox restricts Lua code execution by:
//   - Opening only the base, table, string and math libraries
//   - Removing dofile, loadfile, load and loadstring
//   - Replacing require with a whitelist of built-in modules
//
// # Bridge
//
// The Bridge converts Lua values to plain Go values:
//
//	bridge := lua.NewBridge(state.LuaState())
//	goVal := bridge.ToGoValue(luaVal)
package lua
