package categorizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

// DefaultRemoteTimeout bounds a single provider call.
const DefaultRemoteTimeout = 3500 * time.Millisecond

// RemoteCategorizer asks a Provider to categorize a description and turns the
// reply into a TransactionAnalysis. It never sets the amount.
type RemoteCategorizer struct {
	timeout time.Duration
	logger  logging.Logger
}

func NewRemoteCategorizer(timeout time.Duration, logger logging.Logger) *RemoteCategorizer {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteCategorizer{timeout: timeout, logger: logging.OrDefault(logger)}
}

// BuildPrompt renders the instructions sent with every request. The category
// list is a snapshot taken by the caller.
func BuildPrompt(categories []models.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = fmt.Sprintf("%s (ID: %d)", c.Name, c.ID)
	}

	return "You are a Finance Transaction Analyzer. Categorize this transaction and determine if it's a credit or debit.\n" +
		"Return ONLY JSON in this format: {\"description\": \"string\", \"type\": \"debit/credit\", \"categoryId\": number}\n" +
		"Available categories with their IDs: " + strings.Join(names, ", ") + "\n" +
		"Choose the most appropriate category ID for the transaction.\n" +
		"Return ONLY valid JSON with the exact schema specified."
}

type completion struct {
	text string
	err  error
}

// Categorize runs one provider call bounded by the categorizer timeout. Errors
// are *parsererror.CategorizationError wrapping ErrProviderTimeout,
// ErrProviderTransport or ErrResponseFormat.
func (c *RemoteCategorizer) Categorize(ctx context.Context, description string, provider Provider, categories []models.Category) (models.TransactionAnalysis, error) {
	logger := c.logger.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: provider.Name()},
		logging.Field{Key: logging.FieldDescription, Value: description},
	)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildPrompt(categories)
	logger.Debug("Sending categorization request")
	start := time.Now()

	// The provider runs in its own goroutine so one that ignores ctx still cannot
	// hold the caller past the timeout.
	done := make(chan completion, 1)
	go func() {
		text, err := provider.Complete(callCtx, prompt, description)
		done <- completion{text: text, err: err}
	}()

	var reply completion
	select {
	case reply = <-done:
	case <-callCtx.Done():
		reply = completion{err: callCtx.Err()}
	}

	elapsed := time.Since(start)
	logger = logger.WithField(logging.FieldDuration, elapsed.Milliseconds())

	if reply.err != nil {
		err := c.classify(callCtx, reply.err)
		logger.WithError(err).Debug("Categorization request failed")
		return models.TransactionAnalysis{}, &parsererror.CategorizationError{
			Description: description,
			Provider:    provider.Name(),
			Err:         err,
		}
	}
	logger.Debug("Received categorization response", logging.Field{Key: "response", Value: reply.text})

	analysis, err := parseReply(reply.text, description, categories)
	if err != nil {
		return models.TransactionAnalysis{}, &parsererror.CategorizationError{
			Description: description,
			Provider:    provider.Name(),
			Err:         err,
		}
	}
	return analysis, nil
}

func (c *RemoteCategorizer) classify(callCtx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrResponseFormat):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ErrProviderTransport, err)
	}
}

// parseReply extracts the outermost {...} span of text and maps it onto an analysis.
func parseReply(text, description string, categories []models.Category) (models.TransactionAnalysis, error) {
	open := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if open < 0 || end < open {
		return models.TransactionAnalysis{}, fmt.Errorf("%w: no JSON object in %q", ErrResponseFormat, text)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(text[open:end+1]), &fields); err != nil {
		return models.TransactionAnalysis{}, fmt.Errorf("%w: %w", ErrResponseFormat, err)
	}

	out := models.TransactionAnalysis{
		Description: description,
		Type:        models.TransactionTypeDebit,
		CategoryID:  models.MiscellaneousCategoryID,
	}
	if d, ok := fields["description"].(string); ok && strings.TrimSpace(d) != "" {
		out.Description = d
	}
	if t, ok := fields["type"].(string); ok {
		out.Type = models.ParseTransactionType(t)
	}

	// Only a positive whole categoryId is taken as is, unknown ids included.
	// Anything else falls back to the category name, then Miscellaneous.
	switch id, hasID := fields["categoryId"].(float64); {
	case hasID && id >= 1 && id == math.Trunc(id) && id <= math.MaxInt32:
		out.CategoryID = int(id)
	default:
		if name, ok := fields["category"].(string); ok && name != "" {
			out.CategoryID = categoryIDByName(categories, name)
			out.Category = name
		}
	}
	return out, nil
}

func categoryIDByName(categories []models.Category, name string) int {
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	return models.MiscellaneousCategoryID
}
