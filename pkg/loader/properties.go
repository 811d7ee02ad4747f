package loader

import (
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

const propertiesKeyPrefix = "job."

// parseProperties reads job declarations from a Java style properties file.
// Keys are processed in file order, a blank value declares a job with no
// predecessors.
func parseProperties(raw []byte) (*GraphFile, error) {
	p, err := properties.Load(raw, properties.UTF8)
	if err != nil {
		return nil, err
	}

	gf := &GraphFile{}
	for _, key := range p.Keys() {
		if !strings.HasPrefix(key, propertiesKeyPrefix) {
			return nil, errors.Wrapf(ErrMalformedDeclaration, "key '%s' does not start with '%s'", key, propertiesKeyPrefix)
		}

		job, err := strconv.Atoi(strings.TrimPrefix(key, propertiesKeyPrefix))
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedDeclaration, "key '%s' does not name a job id", key)
		}

		decl := Declaration{Job: job}

		value, _ := p.Get(key)
		for _, field := range strings.Split(value, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			pre, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedDeclaration, "key '%s' has non numeric predecessor '%s'", key, field)
			}

			decl.Requires = append(decl.Requires, pre)
		}

		gf.Jobs = append(gf.Jobs, decl)
	}

	return gf, nil
}
