package usecase

import (
	"context"
	"os"
	"sync"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
)

type fakeRecognizer struct {
	result   entities.Recognition
	err      error
	panicMsg string

	calls    int
	lastPath string
	sawBytes []byte
}

func (f *fakeRecognizer) Name() string  { return "fake" }
func (f *fakeRecognizer) Model() string { return "fake-model" }

func (f *fakeRecognizer) Recognize(ctx context.Context, audioPath string) (entities.Recognition, error) {
	f.calls++
	f.lastPath = audioPath
	f.sawBytes, _ = os.ReadFile(audioPath)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.result, f.err
}

type fakeCompleter struct {
	reply string
	err   error

	calls   int
	lastReq repositories.CompletionRequest
}

func (f *fakeCompleter) Name() string  { return "fake" }
func (f *fakeCompleter) Model() string { return "fake-chat" }

func (f *fakeCompleter) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

type fakePublisher struct {
	mu        sync.Mutex
	published []entities.Exchange
	done      chan struct{}
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{done: make(chan struct{}, 1)}
}

func (f *fakePublisher) PublishExchange(ctx context.Context, exchange entities.Exchange) error {
	f.mu.Lock()
	f.published = append(f.published, exchange)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}
