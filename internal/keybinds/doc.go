// Package keybinds maps key presses to console actions.
//
// Bindings are grouped by context. A context is the part of the console
// that owns the keyboard: the tab bar, a text field of a form, the history
// table or the response viewport. Lookups fall back to the global context
// when the active context has no binding for a key.
//
// Users can override the defaults with ~/.snmpconsole/keybinds.json:
//
//	{
//	  "version": "1.0",
//	  "history": { "refresh_history": "r,f5" },
//	  "global":  { "quit": "q" }
//	}
//
// Each section maps an action to a comma-separated list of keys.
package keybinds
