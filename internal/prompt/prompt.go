// Package prompt builds the texts sent to the completion model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sozercan/datachat/internal/dataset"
)

// Relevance asks whether question concerns analysis of a dataset with the given columns.
func Relevance(question string, columns []string) string {
	return fmt.Sprintf(`Is the following question relevant to data analysis of an uploaded dataset?
The dataset has these columns: %s.
Be lenient: if the question could plausibly be answered or explored with this data, it is relevant.
Respond with just 'yes' or 'no'.

Here is the question: %s`, strings.Join(columns, ", "), question)
}

// GraphIntent asks whether answering question calls for a chart or graph.
func GraphIntent(question string) string {
	return fmt.Sprintf(`Does answering the following question require producing a chart, plot or graph?
Respond with just 'yes' or 'no'.

Here is the question: %s`, question)
}

// Answer embeds the whole dataset as CSV, so the usable dataset size is
// bounded by the model's context window.
func Answer(question string, ds *dataset.Dataset) string {
	return fmt.Sprintf(`You are a data analyst. Use the dataset below to answer the question.
The dataset is in CSV format, the first line is the header.

Dataset:
%s
Question: %s`, ds.String(), question)
}
