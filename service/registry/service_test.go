package registry

import (
	"sync"
	"testing"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func definition(t *testing.T, key string) *model.Definition {
	def, err := model.NewDefinition(key).Start("start", "end").End("end").Build()
	require.NoError(t, err)
	return def
}

func TestService_Register(t *testing.T) {
	srv := New()
	require.NoError(t, srv.Register(definition(t, "holidayRequest")))
	require.NoError(t, srv.Register(definition(t, "expenseClaim")))

	err := srv.Register(definition(t, "holidayRequest"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, []string{"expenseClaim", "holidayRequest"}, srv.Keys())

	assert.ErrorIs(t, srv.Register(nil), model.ErrInvalidDefinition)
	broken := &model.Definition{Key: "broken", Nodes: []model.Node{&model.End{NodeID: "end"}}}
	assert.ErrorIs(t, srv.Register(broken), model.ErrInvalidDefinition)
}

func TestService_Resolve(t *testing.T) {
	srv := New()
	require.NoError(t, srv.Register(definition(t, "holidayRequest")))

	def, err := srv.Resolve("holidayRequest")
	require.NoError(t, err)
	assert.Equal(t, "holidayRequest", def.Key)

	_, err = srv.Resolve("doesNotExist")
	assert.ErrorIs(t, err, ErrUnknownDefinition)
}

func TestService_ConcurrentResolve(t *testing.T) {
	srv := New()
	require.NoError(t, srv.Register(definition(t, "holidayRequest")))
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := srv.Resolve("holidayRequest")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
