package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := g.Do("euw:faker", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if got != "ok" {
				t.Errorf("unexpected value: %q", got)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunAgain(t *testing.T) {
	var g SingleFlight[int]
	var counter int32

	for i := 0; i < 3; i++ {
		_, _, shared := g.Do("key", func() (int, error) {
			return int(atomic.AddInt32(&counter, 1)), nil
		})
		if shared {
			t.Fatalf("did not expect shared result for sequential call %d", i)
		}
	}
	if got := atomic.LoadInt32(&counter); got != 3 {
		t.Fatalf("expected 3 executions, got %d", got)
	}
}

func TestSingleFlight_OnlyLeaderRuns(t *testing.T) {
	var g SingleFlight[int]
	release := make(chan struct{})
	entered := make(chan struct{})

	leaderDone := make(chan bool, 1)
	go func() {
		_, _, joined := g.Do("k", func() (int, error) {
			close(entered)
			<-release
			return 7, nil
		})
		leaderDone <- joined
	}()
	<-entered

	followerDone := make(chan bool, 1)
	go func() {
		v, _, joined := g.Do("k", func() (int, error) { return -1, nil })
		followerDone <- joined && v == 7
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)

	if joined := <-leaderDone; joined {
		t.Fatalf("leader must not report a joined call")
	}
	if ok := <-followerDone; !ok {
		t.Fatalf("follower must join the leader's result")
	}
}
