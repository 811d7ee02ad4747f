package loader

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/benlaurie/objecthash/go/objecthash"
	"github.com/flyteorg/flytestdlib/logger"
	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

var (
	ErrUnknownFormat        = fmt.Errorf("unknown graph file format error")
	ErrMalformedDeclaration = fmt.Errorf("malformed job declaration error")
)

func IsUnknownFormat(err error) bool {
	return errors.Cause(err) == ErrUnknownFormat
}

func IsMalformedDeclaration(err error) bool {
	return errors.Cause(err) == ErrMalformedDeclaration
}

// Declaration records one job and the jobs that must run directly before it.
type Declaration struct {
	Job      jobgraph.JobID   `json:"job"`
	Requires []jobgraph.JobID `json:"requires,omitempty"`
}

// GraphFile is the on-disk form of a dependency graph, an ordered list of job
// declarations.
type GraphFile struct {
	Jobs []Declaration `json:"jobs"`
}

// BuildGraph assembles a Graph by applying the declarations in order.
// Declaration order does not affect the final graph shape, edges are
// set-based.
func BuildGraph(gf *GraphFile) *jobgraph.Graph {
	g := jobgraph.NewGraph()
	for _, decl := range gf.Jobs {
		g.AddDependency(decl.Job, decl.Requires...)
	}

	return g
}

// LoadFile parses a single graph file. The format is chosen by file
// extension, yaml/yml/json files hold a GraphFile document and properties
// files hold one 'job.<id> = <comma separated predecessor ids>' line per job.
func LoadFile(ctx context.Context, path string) (*GraphFile, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read graph file '%s'", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		gf := &GraphFile{}
		if err := yaml.Unmarshal(raw, gf); err != nil {
			return nil, errors.Wrapf(err, "failed to parse graph file '%s'", path)
		}

		return gf, nil
	case ".properties":
		gf, err := parseProperties(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse graph file '%s'", path)
		}

		return gf, nil
	}

	return nil, errors.Wrapf(ErrUnknownFormat, "graph file '%s'", path)
}

// LoadFiles parses every path and merges the declaration lists in argument
// order.
func LoadFiles(ctx context.Context, paths ...string) (*GraphFile, error) {
	merged := &GraphFile{}
	for _, path := range paths {
		gf, err := LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}

		if err := mergo.Merge(merged, gf, mergo.WithAppendSlice); err != nil {
			return nil, errors.Wrapf(err, "failed to merge graph file '%s'", path)
		}
	}

	logger.Infof(ctx, "loaded %d job declaration(s) from %d file(s)", len(merged.Jobs), len(paths))
	return merged, nil
}

// Fingerprint computes a stable content hash over the declarations,
// independent of the serialization the declarations were loaded from.
func Fingerprint(gf *GraphFile) (string, error) {
	raw, err := json.Marshal(gf)
	if err != nil {
		return "", err
	}

	hash, err := objecthash.CommonJSONHash(string(raw))
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hash[:]), nil
}
