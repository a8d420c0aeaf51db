package container_test

import (
	"testing"

	"github.com/junctionsim/core/container"
	"github.com/stretchr/testify/assert"
)

func TestPriorityQueueHeapOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	q.HeapPush("low", 3)
	q.HeapPush("lowest", 1)
	q.HeapPush("mid", 2)

	v, p := q.HeapPop()
	assert.Equal(t, "lowest", v)
	assert.Equal(t, 1.0, p)

	v, _ = q.HeapPop()
	assert.Equal(t, "mid", v)

	v, _ = q.HeapPop()
	assert.Equal(t, "low", v)

	assert.Equal(t, 0, q.Len())
}

func TestPriorityQueueBatchThenHeapify(t *testing.T) {
	q := container.NewPriorityQueue[int]()
	q.Push(1, -10) // negated score convention: biggest score pops first
	q.Push(2, -50)
	q.Push(3, -30)
	q.Heapify()

	v, _ := q.HeapPop()
	assert.Equal(t, 2, v)
}
