package loader

import (
	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

// SampleFile returns the built-in demonstration declarations, eight jobs with
// a diamond through job4 and a second independent root at job8.
func SampleFile() *GraphFile {
	return &GraphFile{
		Jobs: []Declaration{
			{Job: 1},
			{Job: 2, Requires: []jobgraph.JobID{1}},
			{Job: 3, Requires: []jobgraph.JobID{1}},
			{Job: 4, Requires: []jobgraph.JobID{2, 3}},
			{Job: 5, Requires: []jobgraph.JobID{4}},
			{Job: 6, Requires: []jobgraph.JobID{5}},
			{Job: 7, Requires: []jobgraph.JobID{5, 8}},
			{Job: 8},
		},
	}
}

// Sample returns the graph built from the built-in declarations.
func Sample() *jobgraph.Graph {
	return BuildGraph(SampleFile())
}
