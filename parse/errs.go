package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse    = errors.New("parse error")
	ErrTopLevel = fmt.Errorf("%w: top level must be a dictionary", ErrParse)
	ErrYAMLKey  = fmt.Errorf("%w: yaml mapping key must be a scalar", ErrParse)
)
