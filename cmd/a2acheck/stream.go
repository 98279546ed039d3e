package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"

	protocol "github.com/inference-gateway/a2a-conformance/protocol"
	types "github.com/inference-gateway/a2a-conformance/types"
)

const maxLineSize = 4 * 1024 * 1024

var emitCloudEvents bool

var streamCmd = &cobra.Command{
	Use:   "stream FILE",
	Short: "Validate a newline delimited JSON stream of events",
	Args:  cobra.ExactArgs(1),
	RunE:  runStream,
}

func init() {
	streamCmd.Flags().BoolVar(&emitCloudEvents, "cloudevents", false, "print every valid event as a CloudEvent")
}

// lineReader yields decoded events of an NDJSON stream. Decoding stops at the
// first undecodable line; Err reports it.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &lineReader{scanner: scanner}
}

func (l *lineReader) Events() iter.Seq[types.StreamEvent] {
	return func(yield func(types.StreamEvent) bool) {
		for l.scanner.Scan() {
			l.line++
			data := bytes.TrimSpace(l.scanner.Bytes())
			if len(data) == 0 {
				continue
			}
			event, err := types.UnmarshalStreamEvent(data)
			if err != nil {
				l.err = fmt.Errorf("line %d: %w", l.line, err)
				return
			}
			if !yield(event) {
				return
			}
		}
		if err := l.scanner.Err(); err != nil {
			l.err = fmt.Errorf("line %d: %w", l.line+1, err)
		}
	}
}

func (l *lineReader) Err() error {
	return l.err
}

// streamSummary follows the task a stream describes
type streamSummary struct {
	task     *types.Task
	events   int
	rejected int
}

func (s *streamSummary) observe(event types.StreamEvent) {
	var err error
	switch e := event.(type) {
	case types.Task:
		task := e
		s.task = &task
	case types.TaskStatusUpdateEvent:
		if s.task != nil {
			var next types.Task
			if next, err = protocol.ApplyStatusUpdate(*s.task, e); err == nil {
				s.task = &next
			}
		}
	case types.TaskArtifactUpdateEvent:
		if s.task != nil {
			var next types.Task
			if next, err = protocol.ApplyArtifactUpdate(*s.task, e); err == nil {
				s.task = &next
			}
		}
	}
	if err != nil {
		logger.Debug("event not applied to task", zap.String("kind", event.EventKind()), zap.Error(err))
	}
}

func (s *streamSummary) print(w io.Writer) {
	fmt.Fprintf(w, "%d events, %d rejected\n", s.events, s.rejected)
	if s.task == nil {
		return
	}

	helper := protocol.NewArtifactHelper()
	fmt.Fprintf(w, "task %s: %s, %d artifacts (text %d, file %d, data %d)\n",
		s.task.ID,
		s.task.Status.State,
		len(s.task.Artifacts),
		len(helper.GetArtifactsByKind(*s.task, types.MessagePartKindText)),
		len(helper.GetArtifactsByKind(*s.task, types.MessagePartKindFile)),
		len(helper.GetArtifactsByKind(*s.task, types.MessagePartKindData)))
}

func runStream(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reader := newLineReader(bytes.NewReader(data))
	summary := &streamSummary{}
	encoder := json.NewEncoder(out)

	for event, err := range checker.CheckStream(cmd.Context(), reader.Events()) {
		summary.events++
		if err != nil {
			summary.rejected++
			fmt.Fprintf(out, "✗ event %d (%s): %v\n", summary.events, event.EventKind(), err)
			continue
		}
		summary.observe(event)

		if !emitCloudEvents {
			continue
		}
		ce, err := types.NewStreamCloudEvent(event)
		if err != nil {
			return fmt.Errorf("event %d: %w", summary.events, err)
		}
		if err := encoder.Encode(ce); err != nil {
			return err
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}

	summary.print(out)
	if summary.rejected > 0 {
		return errNotConformant
	}
	return nil
}
