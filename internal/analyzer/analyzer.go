package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sozercan/datachat/internal/dataset"
	"github.com/sozercan/datachat/internal/llm"
	"github.com/sozercan/datachat/internal/prompt"
)

const (
	NoDatasetText    = "No dataset has been uploaded yet. Please upload a CSV file first."
	GraphPlaceholder = "A graph has been produced for your question."
	ApologyText      = "I’m a simple bot. I don’t have real responses yet!"
)

// ErrEmptyDataset is returned when a question arrives before any upload.
var ErrEmptyDataset = errors.New("no dataset uploaded")

// NotRelevantText is the answer for questions the classifier rejected.
func NotRelevantText(question string) string {
	return fmt.Sprintf("The question \"%s\" is not relevant to the dataset. It does not pertain to any data analysis or visualization tasks.", question)
}

type Step string

const (
	StepRelevance   Step = "relevance"
	StepGraphIntent Step = "graph_intent"
	StepAnswer      Step = "answer"
)

// CompletionError reports a failed model call and the step it happened in.
type CompletionError struct {
	Step Step
	Err  error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Step, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

type AnswerKind int

const (
	AnswerNotRelevant AnswerKind = iota + 1
	AnswerGraph
	AnswerGrounded
)

type Answer struct {
	Kind AnswerKind
	Text string
}

// IsAffirmative reports whether a classifier reply means "yes". Any reply
// containing "yes" in any case counts, including "yes, but actually no".
func IsAffirmative(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "yes")
}

type Analyzer struct {
	store       *dataset.Store
	llmProvider llm.Provider
}

func New(store *dataset.Store, llmProvider llm.Provider) *Analyzer {
	return &Analyzer{
		store:       store,
		llmProvider: llmProvider,
	}
}

// Analyze runs relevance classification, graph-intent classification and the
// grounded answer in that order, stopping at the first terminal outcome.
// Every step reads the snapshot taken when the call started.
func (a *Analyzer) Analyze(ctx context.Context, question string) (Answer, error) {
	ds := a.store.Current()
	if len(ds.Columns) == 0 {
		return Answer{}, ErrEmptyDataset
	}

	slog.Info("Starting analysis", "question", question, "rows", ds.Len())
	startTime := time.Now()

	reply, err := a.complete(ctx, StepRelevance, prompt.Relevance(question, ds.Columns))
	if err != nil {
		return Answer{}, err
	}
	if !IsAffirmative(reply) {
		slog.Info("Question classified as not relevant", "reply", reply)
		return Answer{Kind: AnswerNotRelevant, Text: NotRelevantText(question)}, nil
	}

	reply, err = a.complete(ctx, StepGraphIntent, prompt.GraphIntent(question))
	if err != nil {
		return Answer{}, err
	}
	if IsAffirmative(reply) {
		// Chart rendering is not implemented; this branch only acknowledges the request.
		slog.Info("Graph requested", "question", question)
		return Answer{Kind: AnswerGraph, Text: GraphPlaceholder}, nil
	}

	reply, err = a.complete(ctx, StepAnswer, prompt.Answer(question, ds))
	if err != nil {
		return Answer{}, err
	}

	slog.Info("Analysis finished", "duration", time.Since(startTime))
	return Answer{Kind: AnswerGrounded, Text: reply}, nil
}

func (a *Analyzer) complete(ctx context.Context, step Step, text string) (string, error) {
	resp, err := a.llmProvider.Complete(ctx, text)
	if err != nil {
		slog.Error("LLM completion failed", "step", step, "error", err)
		return "", &CompletionError{Step: step, Err: err}
	}
	slog.Debug("LLM completion", "step", step, "reply", resp.Content, "tokens", resp.Usage.TotalTokens)
	return resp.Content, nil
}

// Respond turns the outcome of Analyze into the text returned to the caller.
// Pipeline failures never surface as errors: an empty store gets NoDatasetText
// and a failed model call gets ApologyText.
func Respond(answer Answer, err error) string {
	var completionErr *CompletionError
	switch {
	case err == nil:
		return answer.Text
	case errors.Is(err, ErrEmptyDataset):
		return NoDatasetText
	case errors.As(err, &completionErr):
		return ApologyText
	default:
		slog.Error("Unexpected analysis error", "error", err)
		return ApologyText
	}
}
