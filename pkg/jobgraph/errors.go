package jobgraph

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrJobNotFound = fmt.Errorf("job not-found error")

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrJobNotFound
}
