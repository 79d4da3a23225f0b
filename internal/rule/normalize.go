package rule

// Normalize removes operations that provably do not change the result
// of the rule on any input: duplicate idempotent case operations,
// self-cancelling involutions, and no-op arguments. Apply does not
// require normalized rules; the optimizer uses Normalize to rank
// equivalent rules by true operation count.
func Normalize(r Rule) Rule {
	out := make(Rule, 0, len(r))
	for _, op := range r {
		// Drop no-op arguments outright.
		if op.Kind == KindSubstitute && op.From == op.To {
			continue
		}
		if (op.Kind == KindTruncateRight || op.Kind == KindTruncateLeft) && op.N == 0 {
			continue
		}

		if len(out) > 0 {
			prev := out[len(out)-1]
			if dropsAfter(prev, op) {
				continue
			}
			if cancels(prev, op) {
				out = out[:len(out)-1]
				continue
			}
		}
		out = append(out, op)
	}
	return out
}

// dropsAfter reports whether op is a no-op immediately after prev.
func dropsAfter(prev, op Op) bool {
	switch op.Kind {
	case KindUppercase, KindLowercase, KindCapitalize:
		// Idempotent: repeating the same case op changes nothing.
		if prev.Kind == op.Kind {
			return true
		}
	}
	// Capitalize after Uppercase: the first rune is already upper.
	if op.Kind == KindCapitalize && prev.Kind == KindUppercase {
		return true
	}
	// Toggling the same position twice restores it; handled by cancels.
	return false
}

// cancels reports whether prev and op are a self-cancelling pair.
func cancels(prev, op Op) bool {
	if prev.Kind != op.Kind {
		return false
	}
	switch op.Kind {
	case KindToggleCase, KindReverse:
		return true
	case KindToggleAt:
		return prev.N == op.N
	}
	return false
}

// OperationCount returns the number of effective operations after
// normalization.
func OperationCount(r Rule) int { return len(Normalize(r)) }
