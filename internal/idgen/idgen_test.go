package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_Next(t *testing.T) {
	var seq Sequence
	assert.Equal(t, "1", seq.Next())
	assert.Equal(t, "2", seq.Next())
	assert.EqualValues(t, 2, seq.Last())
}

func TestSequence_Concurrent(t *testing.T) {
	var seq Sequence
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := seq.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

func TestNew_Stub(t *testing.T) {
	prev := NewFunc
	defer func() { NewFunc = prev }()
	NewFunc = func() string { return "fixed" }
	assert.Equal(t, "fixed", New())
}

func TestSequence_Seed(t *testing.T) {
	testCases := []struct {
		description string
		issued      int
		seed        int64
		expect      string
	}{
		{description: "fresh sequence continues after seed", seed: 7, expect: "8"},
		{description: "lower seed is ignored", issued: 3, seed: 2, expect: "4"},
		{description: "equal seed is ignored", issued: 3, seed: 3, expect: "4"},
	}
	for _, testCase := range testCases {
		var seq Sequence
		for i := 0; i < testCase.issued; i++ {
			seq.Next()
		}
		seq.Seed(testCase.seed)
		assert.Equal(t, testCase.expect, seq.Next(), testCase.description)
	}
}
