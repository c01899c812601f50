package parse

import "github.com/mesh-intelligence/typeparse/pkg/types"

// Sentinel literals that cause rejection.
const (
	SentinelInt  = 0
	SentinelText = "dog"
)

// Validatable is the closed set of types with a validation rule.
// Passing any other type to Validate does not compile.
type Validatable interface {
	int | int32 | int64 | string
}

// Validate applies the rule for T to v and returns the outcome. It never
// fails: rejection is reported in the outcome.
func Validate[T Validatable](v T) types.Outcome[T] {
	switch x := any(v).(type) {
	case int:
		return intRule(v, int64(x))
	case int32:
		return intRule(v, int64(x))
	case int64:
		return intRule(v, x)
	case string:
		return textRule(v, x)
	default:
		return types.Unsupported[T]()
	}
}

// Int validates an integer: 0 is rejected, everything else is accepted.
func Int(n int64) types.Outcome[int64] {
	return intRule(n, n)
}

// Text validates a text: "dog" is rejected, everything else is accepted.
func Text(s string) types.Outcome[string] {
	return textRule(s, s)
}

func intRule[T any](v T, n int64) types.Outcome[T] {
	if n == SentinelInt {
		return types.Reject[T](types.ReasonZero)
	}
	return types.Accept(v)
}

func textRule[T any](v T, s string) types.Outcome[T] {
	if s == SentinelText {
		return types.Reject[T](types.ReasonDog)
	}
	return types.Accept(v)
}
