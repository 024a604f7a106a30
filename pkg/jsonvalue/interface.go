package jsonvalue

import (
	"math/big"
	"strconv"
	"strings"
)

// ToInterface converts v into plain Go values: nil, bool, int, *big.Int,
// float64, string, []any and map[string]any. Member order is lost, so the result
// is meant for evaluation (filters, queries), never for output.
func ToInterface(v Value) any {
	switch tv := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(tv)
	case Number:
		return numberToInterface(string(tv))
	case String:
		return string(tv)
	case Array:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = ToInterface(item)
		}
		return out
	case *Object:
		out := make(map[string]any, tv.Len())
		for _, m := range tv.Members() {
			out[m.Key] = ToInterface(m.Value)
		}
		return out
	}
	return nil
}

func numberToInterface(lit string) any {
	if !strings.ContainsAny(lit, ".eE") {
		if n, err := strconv.Atoi(lit); err == nil {
			return n
		}
		if n, ok := new(big.Int).SetString(lit, 10); ok {
			return n
		}
	}
	// Out-of-range literals saturate to ±Inf.
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}
