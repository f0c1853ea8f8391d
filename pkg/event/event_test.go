package event_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/veyralabs/veyra/pkg/event"
)

func TestFire_DeliversToAllListeners(t *testing.T) {
	t.Cleanup(event.Flush)

	var got []interface{}
	event.Listen("brand.created", func(p interface{}) { got = append(got, p) })
	event.Listen("brand.created", func(p interface{}) { got = append(got, p) })

	event.Fire("brand.created", "payload")

	assert.Equal(t, []interface{}{"payload", "payload"}, got)
}

func TestFire_UnknownEventIsNoop(t *testing.T) {
	t.Cleanup(event.Flush)
	assert.NotPanics(t, func() { event.Fire("nobody.listens", nil) })
}

func TestFireAsync(t *testing.T) {
	t.Cleanup(event.Flush)

	var wg sync.WaitGroup
	wg.Add(2)
	event.Listen("product.updated", func(interface{}) { wg.Done() })
	event.Listen("product.updated", func(interface{}) { wg.Done() })

	event.FireAsync("product.updated", nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handlers did not run")
	}
}

func TestFlush_RemovesListeners(t *testing.T) {
	calls := 0
	event.Listen("category.deleted", func(interface{}) { calls++ })
	event.Flush()

	event.Fire("category.deleted", nil)
	assert.Zero(t, calls)
}
