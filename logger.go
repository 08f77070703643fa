package recipebuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"recipebuilder/builder"
	"recipebuilder/recipes"
)

// EventLogger records recipe events.
type EventLogger interface {
	LogEvent(event RecipeEvent) error
}

// RecipeEvent is a single recipe lifecycle event.
type RecipeEvent struct {
	Action    string          `json:"action"`
	Timestamp time.Time       `json:"timestamp"`
	RecipeID  string          `json:"recipe_id,omitempty"`
	Recipe    *recipes.Recipe `json:"recipe,omitempty"`
	Tool      *ToolCallLog    `json:"tool,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ToolCallLog represents a tool execution within a batch run
type ToolCallLog struct {
	Step   int            `json:"step"`
	Name   string         `json:"name"`
	Input  map[string]any `json:"input"`
	Output map[string]any `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}

const (
	ActionCreated  = "created"
	ActionDeleted  = "deleted"
	ActionToolCall = "tool_call"
)

// NewEventLogFilePath returns a timestamped path for an event log file.
func NewEventLogFilePath(dir string) string {
	return fmt.Sprintf("%s/%d.recipe-events.json", dir, time.Now().Unix())
}

// FileEventLogger accumulates events and writes them out on Flush
type FileEventLogger struct {
	events []RecipeEvent
	writer io.Writer
}

func NewFileEventLogger(writer io.Writer) *FileEventLogger {
	return &FileEventLogger{
		events: make([]RecipeEvent, 0),
		writer: writer,
	}
}

// LogEvent buffers the event (does not flush immediately)
func (l *FileEventLogger) LogEvent(event RecipeEvent) error {
	l.events = append(l.events, event)
	return nil
}

// Flush writes all buffered events to the writer
func (l *FileEventLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"recipe_session": map[string]any{
			"timestamp": time.Now(),
			"events":    l.events,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe events: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write recipe events: %w", err)
	}

	l.events = l.events[:0]
	return nil
}

// NoOpEventLogger discards all events
type NoOpEventLogger struct{}

func NewNoOpEventLogger() *NoOpEventLogger {
	return &NoOpEventLogger{}
}

func (nop *NoOpEventLogger) LogEvent(event RecipeEvent) error {
	return nil
}

// StdoutEventLogger writes each event as a JSON line (for Lambda/CloudWatch)
type StdoutEventLogger struct {
	out io.Writer
}

func NewStdoutEventLogger() *StdoutEventLogger {
	return &StdoutEventLogger{out: os.Stdout}
}

func (l *StdoutEventLogger) LogEvent(event RecipeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}

// EventNotifier turns created recipes into "created" events.
type EventNotifier struct {
	logger EventLogger
	now    func() time.Time
}

var _ builder.Notifier = (*EventNotifier)(nil)

func NewEventNotifier(logger EventLogger) *EventNotifier {
	return &EventNotifier{logger: logger, now: time.Now}
}

func (n *EventNotifier) RecipeCreated(ctx context.Context, recipe recipes.Recipe) error {
	return n.logger.LogEvent(RecipeEvent{
		Action:    ActionCreated,
		Timestamp: n.now(),
		RecipeID:  recipe.ID,
		Recipe:    &recipe,
	})
}

// LogNotifier reports created recipes through slog.
type LogNotifier struct{}

var _ builder.Notifier = LogNotifier{}

func (LogNotifier) RecipeCreated(ctx context.Context, recipe recipes.Recipe) error {
	slog.InfoContext(ctx, "Recipe created",
		"id", recipe.ID,
		"name", recipe.Name,
		"ingredients", recipe.Ingredients,
		"total_calories", recipe.TotalCalories,
		"created_date", recipe.CreatedDate,
	)
	return nil
}
