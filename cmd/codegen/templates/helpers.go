package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// readableParams renders "arg0 Readable[T0], arg1 Readable[T1], ..."
func readableParams(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("arg" + n + " Readable[T" + n + "]")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
