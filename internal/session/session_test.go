package session

import (
	"errors"
	"testing"
)

var errDecode = errors.New("bad image")

func echo(src []byte) ([]byte, error) {
	if string(src) == "bad" {
		return nil, errDecode
	}
	return append([]byte("png:"), src...), nil
}

func TestSessionStartsIdle(t *testing.T) {
	s := New(ComposerFunc(echo))
	if s.State() != Idle {
		t.Fatalf("state = %v, want idle", s.State())
	}
	if _, err := s.Result(); !errors.Is(err, ErrNoResult) {
		t.Fatalf("Result() err = %v, want ErrNoResult", err)
	}
}

func TestUploadDone(t *testing.T) {
	s := New(ComposerFunc(echo))
	if err := s.Upload([]byte("cat")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if s.State() != Done {
		t.Fatalf("state = %v, want done", s.State())
	}
	out, err := s.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if string(out) != "png:cat" {
		t.Fatalf("Result = %q", out)
	}
	if string(s.Original()) != "cat" {
		t.Fatalf("Original = %q", s.Original())
	}
}

func TestUploadFailedKeepsNoResult(t *testing.T) {
	s := New(ComposerFunc(echo))
	if err := s.Upload([]byte("cat")); err != nil {
		t.Fatal(err)
	}
	if err := s.Upload([]byte("bad")); !errors.Is(err, errDecode) {
		t.Fatalf("Upload err = %v, want %v", err, errDecode)
	}
	if s.State() != Failed {
		t.Fatalf("state = %v, want failed", s.State())
	}
	if !errors.Is(s.Err(), errDecode) {
		t.Fatalf("Err() = %v", s.Err())
	}
	if _, err := s.Result(); !errors.Is(err, ErrNoResult) {
		t.Fatalf("previous result survived a failed upload")
	}
}

func TestReset(t *testing.T) {
	s := New(ComposerFunc(echo))
	_ = s.Upload([]byte("bad"))
	s.Reset()
	if s.State() != Idle || s.Err() != nil || s.Original() != nil {
		t.Fatalf("reset left state=%v err=%v original=%q", s.State(), s.Err(), s.Original())
	}
	if err := s.Upload([]byte("dog")); err != nil {
		t.Fatalf("Upload after reset: %v", err)
	}
	if s.State() != Done {
		t.Fatalf("state = %v, want done", s.State())
	}
}

func TestUploadWhileProcessing(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := New(ComposerFunc(func(src []byte) ([]byte, error) {
		close(started)
		<-release
		return src, nil
	}))

	done := make(chan error, 1)
	go func() { done <- s.Upload([]byte("slow")) }()
	<-started

	if s.State() != Processing {
		t.Fatalf("state = %v, want processing", s.State())
	}
	if err := s.Upload([]byte("again")); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Upload err = %v, want ErrBusy", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if s.State() != Done {
		t.Fatalf("state = %v, want done", s.State())
	}
}

func TestResetDuringProcessingWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := New(ComposerFunc(func(src []byte) ([]byte, error) {
		close(started)
		<-release
		return src, nil
	}))

	done := make(chan error, 1)
	go func() { done <- s.Upload([]byte("slow")) }()
	<-started
	s.Reset()
	close(release)
	<-done

	if s.State() != Idle {
		t.Fatalf("state = %v, want idle", s.State())
	}
}

func TestStateString(t *testing.T) {
	for st, want := range map[State]string{Idle: "idle", Processing: "processing", Done: "done", Failed: "failed", State(9): "unknown"} {
		if got := st.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(st), got, want)
		}
	}
}
