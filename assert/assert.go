package assert

import "fmt"

func Assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// Assertf is Assert with a formatted message. The message is only
// built when the condition fails.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

func AssertNotNil(a any) {
	if a == nil {
		panic("expect non-nil value")
	}
}

func AssertPositive(n int, name string) {
	if n <= 0 {
		panic(fmt.Sprintf("expected %s to be positive, got %d", name, n))
	}
}

func AssertInRange(n, lo, hi int) {
	if n < lo || n >= hi {
		panic(fmt.Sprintf("value %d out of range [%d, %d)", n, lo, hi))
	}
}
