package traversal

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNoRootFound = fmt.Errorf("no root job found error")

func IsNoRootFound(err error) bool {
	return errors.Cause(err) == ErrNoRootFound
}
