package shutdown

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justsurfingit/careerpilot/pkg/logging"
)

type httpService struct {
	srv *http.Server
	ln  net.Listener
}

func (s *httpService) Run() error {
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *httpService) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func TestGracefulWaitsForInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	started := make(chan struct{})
	var finished atomic.Bool
	svc := &httpService{
		ln: ln,
		srv: &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			time.Sleep(300 * time.Millisecond)
			finished.Store(true)
			w.WriteHeader(http.StatusOK)
		})},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Graceful(ctx, svc, 5*time.Second, logging.Nop()) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Graceful: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Graceful did not return")
	}
	if !finished.Load() {
		t.Error("Graceful returned before the in-flight request finished")
	}
	if got := <-status; got != http.StatusOK {
		t.Errorf("in-flight request status = %d, want 200", got)
	}
}

type fakeService struct {
	runErr      error
	shutdownErr error
	stopped     chan struct{}
	shutdowns   atomic.Int32
}

func (f *fakeService) Run() error {
	if f.runErr != nil {
		return f.runErr
	}
	<-f.stopped
	return nil
}

func (f *fakeService) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stopped)
	}
	return f.shutdownErr
}

func TestGracefulReturnsRunError(t *testing.T) {
	boom := errors.New("address in use")
	svc := &fakeService{runErr: boom, stopped: make(chan struct{})}

	err := Graceful(context.Background(), svc, time.Second, logging.Nop())
	if !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}
	if n := svc.shutdowns.Load(); n != 0 {
		t.Errorf("Shutdown called %d times after a failed start", n)
	}
}

func TestGracefulReportsShutdownError(t *testing.T) {
	svc := &fakeService{shutdownErr: context.DeadlineExceeded, stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Graceful(ctx, svc, time.Second, logging.Nop())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if n := svc.shutdowns.Load(); n != 1 {
		t.Errorf("Shutdown called %d times, want 1", n)
	}
}
