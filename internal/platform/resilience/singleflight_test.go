package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var executions int32

	const callers = 16
	release := make(chan struct{})
	var entered, wg sync.WaitGroup
	entered.Add(callers)
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			entered.Done()
			val, err, _ := flight.Do("/scoreboard?week=2", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				// Hold the call open until every caller has queued up.
				<-release
				return "payload", nil
			})
			if err != nil {
				t.Errorf("call failed: %v", err)
			}
			if val != "payload" {
				t.Errorf("val = %v, want payload", val)
			}
		}()
	}

	entered.Wait()
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("fn ran %d times, want 1", got)
	}
}

func TestSingleFlightDistinctKeysRunIndependently(t *testing.T) {
	var flight SingleFlight

	if _, err, shared := flight.Do("a", func() (any, error) { return 1, nil }); err != nil || shared {
		t.Fatalf("first key: err=%v shared=%v", err, shared)
	}
	if _, err, shared := flight.Do("b", func() (any, error) { return 2, nil }); err != nil || shared {
		t.Fatalf("second key: err=%v shared=%v", err, shared)
	}
}

func TestSingleFlightPropagatesErrors(t *testing.T) {
	var flight SingleFlight
	sentinel := errors.New("upstream down")

	_, err, _ := flight.Do("k", func() (any, error) { return nil, sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}

	// The key is released after the failed call completes.
	val, err, shared := flight.Do("k", func() (any, error) { return "ok", nil })
	if err != nil || shared || val != "ok" {
		t.Fatalf("retry after failure: val=%v err=%v shared=%v", val, err, shared)
	}
}
