package jsonrepair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepankarm/jsonrepair/pkg/jsonrepair"
)

func TestStreamRepairer(t *testing.T) {
	sr := jsonrepair.NewStreamRepairer()

	assert.Equal(t, `{"query":"gol"}`, sr.Feed([]byte(`{"query": "gol`)))
	assert.Equal(t, `{"query":"golang","n":3}`, sr.Feed([]byte(`ang", "n": 3`)))
	assert.Equal(t, `{"query":"golang","n":3}`, sr.Feed([]byte(`}`)))
	assert.Equal(t, `{"query": "golang", "n": 3}`, string(sr.Buffer()))

	sr.Reset()
	assert.Empty(t, sr.Buffer())
	assert.Equal(t, `[1]`, sr.Feed([]byte(`[1`)))
}

func TestStreamRepairerKeepsTail(t *testing.T) {
	sr := jsonrepair.NewStreamRepairer()
	assert.Equal(t, `{"key":"value   "}`, sr.Feed([]byte(`{"key": "value   `)))
}

func TestStreamRepairerBufferIsCopy(t *testing.T) {
	sr := jsonrepair.NewStreamRepairer()
	sr.Feed([]byte(`[1`))
	buf := sr.Buffer()
	buf[0] = '{'
	assert.Equal(t, `[1`, string(sr.Buffer()))
}
