package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/cotador/internal/llm"
)

// FakeLLM answers Generate calls from per-task scripts. Each task pops its
// next scripted reply; when a task's script is exhausted the last reply
// repeats. Tasks with no script fail with llm.ErrOllamaUnavailable.
type FakeLLM struct {
	mu      sync.Mutex
	replies map[llm.TaskType][]FakeReply
	Calls   []llm.GenerateRequest
	Up      bool
}

// FakeReply is one scripted completion or failure.
type FakeReply struct {
	Text string
	Err  error
}

func NewFakeLLM() *FakeLLM {
	return &FakeLLM{replies: map[llm.TaskType][]FakeReply{}, Up: true}
}

// On appends text replies for task.
func (f *FakeLLM) On(task llm.TaskType, texts ...string) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range texts {
		f.replies[task] = append(f.replies[task], FakeReply{Text: t})
	}
	return f
}

// Fail scripts an error reply for task.
func (f *FakeLLM) Fail(task llm.TaskType, err error) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[task] = append(f.replies[task], FakeReply{Err: err})
	return f
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, req)

	script := f.replies[req.Task]
	if len(script) == 0 {
		return nil, llm.ErrOllamaUnavailable
	}
	r := script[0]
	if len(script) > 1 {
		f.replies[req.Task] = script[1:]
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &llm.GenerateResponse{Text: r.Text, Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return f.Up }

// CallsFor returns the recorded requests for task.
func (f *FakeLLM) CallsFor(task llm.TaskType) []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []llm.GenerateRequest
	for _, c := range f.Calls {
		if c.Task == task {
			out = append(out, c)
		}
	}
	return out
}
