// SPDX-License-Identifier: Apache-2.0

// Package formats implements the corpus.Handler for each structured file
// format found in a corpus directory.
package formats

import "github.com/disrpt/underscores/internal/corpus"

// DefaultPipeline builds a Pipeline with all handlers registered. Order
// matters: .tok files restore from the token streams of .conllu files, and
// .rels files from their token tables.
func DefaultPipeline() *corpus.Pipeline {
	return corpus.NewPipeline(
		NewDependencyHandler(),
		NewTokenizationHandler(),
		NewRelsHandler(),
	)
}
