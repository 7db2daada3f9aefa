package cli

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/taskboard/internal/api"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (3 lines: separator + notice + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

func (s *SharedState) navigate(path string) {
	s.App.Nav.Navigate(path)
}

// userMessage renders err for display. Backend failures go through the
// user-facing message table; local validation errors are shown as is.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if isBackendError(err) {
		return api.UserMessage(err)
	}
	return err.Error()
}

// fetchSeq numbers every fetch across all views, so a result that reaches a
// freshly mounted view of the same type is still recognized as stale.
var fetchSeq atomic.Uint64

// fetcher sequences a view's loads. Starting a load cancels the previous one
// and only the latest sequence is accepted.
type fetcher struct {
	latest uint64
	cancel context.CancelFunc
}

// next cancels any in-flight load and returns the context and sequence for
// a new one.
func (f *fetcher) next() (context.Context, uint64) {
	f.stop()
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.latest = fetchSeq.Add(1)
	return ctx, f.latest
}

// current reports whether seq belongs to the latest load.
func (f *fetcher) current(seq uint64) bool {
	return seq != 0 && seq == f.latest
}

func (f *fetcher) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// isCanceled reports whether err came from a superseded load.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
