package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sozercan/datachat/internal/dataset"
)

func TestRelevance(t *testing.T) {
	p := Relevance("What is the average age?", []string{"age", "score"})

	assert.Contains(t, p, "What is the average age?")
	assert.Contains(t, p, "age, score")
	assert.Contains(t, p, "'yes' or 'no'")
	assert.Contains(t, p, "lenient")
}

func TestGraphIntent(t *testing.T) {
	p := GraphIntent("Plot score by age")

	assert.Contains(t, p, "Plot score by age")
	assert.Contains(t, p, "graph")
	assert.Contains(t, p, "'yes' or 'no'")
}

func TestAnswerEmbedsWholeDataset(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"age", "score"},
		Rows:    [][]string{{"30", "5"}, {"41", "7"}},
	}

	p := Answer("Who scored highest?", ds)

	assert.Contains(t, p, "age,score\n30,5\n41,7\n")
	assert.Contains(t, p, "Question: Who scored highest?")
}

func TestPromptsAreDeterministic(t *testing.T) {
	ds := &dataset.Dataset{Columns: []string{"x"}, Rows: [][]string{{"1"}}}

	assert.Equal(t, Relevance("q", ds.Columns), Relevance("q", ds.Columns))
	assert.Equal(t, GraphIntent("q"), GraphIntent("q"))
	assert.Equal(t, Answer("q", ds), Answer("q", ds))
}
