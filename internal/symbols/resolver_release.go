//go:build !cymbol_debug

package symbols

const strictScopes = false
