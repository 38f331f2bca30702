// File: highlevel/drainer_test.go
// Author: momentics <momentics@gmail.com>

package highlevel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-ring/core/ring"
)

func TestDrainStagesInOrder(t *testing.T) {
	r := ring.New(8, 16)
	p := NewProducer(r, nil)
	d := NewDrainer(r, DrainerConfig{})

	for i := 0; i < 5; i++ {
		if err := p.TryPublish([]byte(fmt.Sprintf("item-%d", i))); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	if n := d.Drain(3); n != 3 {
		t.Fatalf("Drain(3) staged %d", n)
	}
	if n := d.Drain(100); n != 2 {
		t.Fatalf("second drain staged %d, want 2", n)
	}

	for i := 0; i < 5; i++ {
		buf, ok := d.Next()
		if !ok {
			t.Fatalf("Next %d: empty", i)
		}
		if want := fmt.Sprintf("item-%d", i); string(buf) != want {
			t.Fatalf("Next %d: got %q, want %q", i, buf, want)
		}
		d.Recycle(buf)
	}
	if _, ok := d.Next(); ok {
		t.Fatalf("Next returned data from an empty FIFO")
	}

	stats := d.Stats()
	if stats.Drained != 5 {
		t.Fatalf("stats.Drained = %d, want 5", stats.Drained)
	}
}

// Draining must free buckets for producers even before the caller pops
// the staged copies.
func TestDrainReleasesBuckets(t *testing.T) {
	r := ring.New(2, 8)
	p := NewProducer(r, nil)
	d := NewDrainer(r, DrainerConfig{})

	if err := p.TryPublish([]byte("a")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.TryPublish([]byte("b")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if n := d.Drain(2); n != 2 {
		t.Fatalf("drain staged %d", n)
	}
	// Both buckets decommitted: the ring accepts new payloads while the
	// copies still sit in the FIFO.
	if err := p.TryPublish([]byte("c")); err != nil {
		t.Fatalf("publish after drain: %v", err)
	}

	if buf, _ := d.Next(); string(buf) != "a" {
		t.Fatalf("staged copy lost: %q", buf)
	}
}

func TestDrainerCursorAdvances(t *testing.T) {
	r := ring.New(4, 8)
	p := NewProducer(r, nil)
	d := NewDrainer(r, DrainerConfig{})

	for i := 0; i < 4; i++ {
		if err := p.TryPublish([]byte{byte(i)}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	d.Drain(4)

	cur := d.Cursor()
	if cur.Epoch() != 1 || cur.Index() != 0 {
		t.Fatalf("cursor after full wrap: (%d,%d), want (1,0)", cur.Epoch(), cur.Index())
	}
}

func TestRunDispatchesAll(t *testing.T) {
	const total = 1000

	r := ring.New(16, 16)
	p := NewProducer(r, nil)
	d := NewDrainer(r, DrainerConfig{BatchSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	got := make([]string, 0, total)

	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, func(payload []byte) {
			mu.Lock()
			got = append(got, string(payload))
			if len(got) == total {
				cancel()
			}
			mu.Unlock()
		})
	}()

	for i := 0; i < total; i++ {
		if err := p.Publish(ctx, []byte(fmt.Sprintf("m%04d", i))); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout waiting for drain loop")
	}

	if len(got) != total {
		t.Fatalf("dispatched %d payloads, want %d", len(got), total)
	}
	for i, s := range got {
		if want := fmt.Sprintf("m%04d", i); s != want {
			t.Fatalf("payload %d: got %q, want %q", i, s, want)
		}
	}
}
