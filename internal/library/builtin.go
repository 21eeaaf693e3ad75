package library

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Builtin returns a library holding the stock node set
func Builtin() *Library {
	return New().MustRegister(
		NewInt("int.one", "one", nil, func(map[string]int) int { return 1 }),
		NewInt("int.ten", "ten", nil, func(map[string]int) int { return 10 }),
		NewInt("int.add", "add", []string{"a", "b"}, func(in map[string]int) int {
			return in["a"] + in["b"]
		}),
		NewInt("int.subtract", "subtract", []string{"a", "b"}, func(in map[string]int) int {
			return in["a"] - in["b"]
		}),
		NewInt("int.multiply", "multiply", []string{"a", "b"}, func(in map[string]int) int {
			return in["a"] * in["b"]
		}),
		NewInt("int.double", "double", []string{"a"}, func(in map[string]int) int {
			return in["a"] * 2
		}),
		NewInt("int.negate", "negate", []string{"a"}, func(in map[string]int) int {
			return -in["a"]
		}),
		NewInt("int.output", OutputLabel, []string{"value"}, func(in map[string]int) int {
			return in["value"]
		}),

		NewString("string.hello", "hello", nil, func(map[string]string) string { return "hello" }),
		NewString("string.world", "world", nil, func(map[string]string) string { return "world" }),
		NewString("string.capitalise", "capitalise", []string{"a"}, func(in map[string]string) string {
			return capitalise(in["a"])
		}),
		NewString("string.uppercase", "uppercase", []string{"a"}, func(in map[string]string) string {
			return strings.ToUpper(in["a"])
		}),
		NewString("string.reverse", "reverse", []string{"a"}, func(in map[string]string) string {
			return reverse(in["a"])
		}),
		NewString("string.concat", "concat", []string{"a", "b"}, func(in map[string]string) string {
			return in["a"] + in["b"]
		}),
		NewString("string.output", OutputLabel, []string{"value"}, func(in map[string]string) string {
			return in["value"]
		}),
	)
}

func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
