//go:build cymbol_debug

package symbols

// strictScopes makes a scope mismatch panic at the Leave that caused it.
const strictScopes = true
