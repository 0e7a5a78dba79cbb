package interpreter

import (
	"strconv"
	"strings"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/runtime"
)

// Format renders a value the way print writes it. Void is the empty string
// and reals use the shortest form that round-trips.
func Format(v runtime.Value) string {
	switch v := v.(type) {
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.RealValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case *runtime.ArrayValue:
		parts := make([]string, 0, v.Len())
		for _, el := range v.Elements() {
			parts = append(parts, Format(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *runtime.ClassValue:
		return "<class " + v.Name() + ">"
	case *runtime.ObjectValue:
		return "<object " + v.Name + " of " + v.Class.Name() + ">"
	}
	return ""
}
