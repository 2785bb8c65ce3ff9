package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/docval/doc"
)

func MustString(v doc.Value, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
