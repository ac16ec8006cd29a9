package parser

import (
	"testing"
)

func TestBasicLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"true", "true"},
		{"false", "false"},
		{"y", "y"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := globalInit(t, tt.input); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b * c", "(* (/ a b) c)"},
		{"a + b == c * d", "(== (+ a b) (* c d))"},
		{"a < b", "(< a b)"},
		{"a != b > c", "(> (!= a b) c)"},
		{"-a * b", "(* (- a) b)"},
		{"!a == b", "(== (! a) b)"},
		{"- -a", "(- (- a))"},
		{"(a + b) * c", "(* (group (+ a b)) c)"},
		{"-a[i]", "(- (index a i))"},
		{"a[i][j]", "(index (index a i) j)"},
		{"a[i + 1] * 2", "(* (index a (+ i 1)) 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := globalInit(t, tt.input); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCallExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"f()", "(call f)"},
		{"f(1)", "(call f 1)"},
		{"f(a, b + 1, g(c))", "(call f a (+ b 1) (call g c))"},
		{"f(x)[0]", "(index (call f x) 0)"},
		{"f(x) * 2", "(* (call f x) 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := globalInit(t, tt.input); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCallSpans(t *testing.T) {
	b, file := mustParse(t, "int x = foo(1, 2);")
	v, _ := b.Items.Var(file.Items[0])
	call, ok := b.Exprs.Call(v.Value)
	if !ok {
		t.Fatalf("initializer is not a call")
	}
	if call.CalleeSpan.Start != 8 || call.CalleeSpan.End != 11 {
		t.Errorf("callee span = %v, want 8-11", call.CalleeSpan)
	}
	full := b.Exprs.Get(v.Value).Span
	if full.Start != 8 || full.End != 17 {
		t.Errorf("call span = %v, want 8-17", full)
	}
}
