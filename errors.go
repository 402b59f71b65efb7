package neural

import (
	"bytes"
	"fmt"
)

// manyErr collects the errors of operations that are attempted on every cell.
type manyErr []error

func (err manyErr) Error() string {
	var buf bytes.Buffer
	for _, e := range err {
		fmt.Fprintln(&buf, e.Error())
	}
	return buf.String()
}
