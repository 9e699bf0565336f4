package source

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/mycophonic/primordium/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/mpegmeta/internal/binary"
)

var sample = []byte("0123456789")

func sources() map[string]func() Source {
	return map[string]func() Source{
		"readerat": func() Source {
			return FromReaderAt(binary.NewSafeReader(bytes.NewReader(sample), int64(len(sample)), "sample"), 0)
		},
		"stream": func() Source {
			return FromReader(bytes.NewReader(sample), -1)
		},
		"stream one byte at a time": func() Source {
			return FromReader(iotest.OneByteReader(bytes.NewReader(sample)), -1)
		},
	}
}

func TestSource_PeekDoesNotAdvance(t *testing.T) {
	for name, newSource := range sources() {
		t.Run(name, func(t *testing.T) {
			src := newSource()

			buf := make([]byte, 4)
			n, err := src.Peek(buf, false)
			require.NoError(t, err)
			assert.Equal(t, 4, n)
			assert.Equal(t, "0123", string(buf))
			assert.Equal(t, int64(0), src.Position())

			require.NoError(t, src.Read(buf))
			assert.Equal(t, "0123", string(buf))
			assert.Equal(t, int64(4), src.Position())
		})
	}
}

func TestSource_PeekShort(t *testing.T) {
	for name, newSource := range sources() {
		t.Run(name, func(t *testing.T) {
			src := newSource()
			require.NoError(t, src.Ignore(7))

			buf := make([]byte, 8)
			n, err := src.Peek(buf, true)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.Equal(t, "789", string(buf[:n]))

			_, err = src.Peek(buf, false)
			assert.ErrorIs(t, err, ErrEndOfStream)
			assert.True(t, IsEndOfStream(err))

			require.NoError(t, src.Ignore(3))
			_, err = src.Peek(buf, true)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestSource_ReadPastEnd(t *testing.T) {
	for name, newSource := range sources() {
		t.Run(name, func(t *testing.T) {
			src := newSource()
			require.NoError(t, src.Ignore(8))

			err := src.Read(make([]byte, 4))
			assert.ErrorIs(t, err, ErrEndOfStream)
		})
	}
}

func TestSource_IgnorePastEnd(t *testing.T) {
	for name, newSource := range sources() {
		t.Run(name, func(t *testing.T) {
			src := newSource()

			err := src.Ignore(100)
			assert.ErrorIs(t, err, ErrEndOfStream)
			assert.Equal(t, int64(len(sample)), src.Position())
		})
	}
}

func TestSource_Size(t *testing.T) {
	ra := FromReaderAt(binary.NewSafeReader(bytes.NewReader(sample), 10, "sample"), 2)
	size, ok := ra.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(10), size)
	assert.Equal(t, int64(2), ra.Position())

	_, ok = FromReader(bytes.NewReader(sample), -1).Size()
	assert.False(t, ok)

	size, ok = FromReader(bytes.NewReader(sample), 10).Size()
	assert.True(t, ok)
	assert.Equal(t, int64(10), size)
}

func TestStreamSource_ReadFailure(t *testing.T) {
	boom := errors.New("connection reset")
	src := FromReader(iotest.ErrReader(boom), -1)

	_, err := src.Peek(make([]byte, 4), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrReadFailure)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsEndOfStream(err))
}

func TestStreamSource_UnexpectedEOFIsAFault(t *testing.T) {
	src := FromReader(iotest.ErrReader(io.ErrUnexpectedEOF), -1)

	_, err := src.Peek(make([]byte, 4), true)
	assert.ErrorIs(t, err, fault.ErrReadFailure)
	assert.False(t, IsEndOfStream(err))

	src = FromReader(io.MultiReader(bytes.NewReader(sample[:2]), iotest.ErrReader(io.ErrUnexpectedEOF)), -1)
	err = src.Read(make([]byte, 4))
	assert.ErrorIs(t, err, fault.ErrReadFailure)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.False(t, IsEndOfStream(err))
	assert.Equal(t, int64(2), src.Position())
}

func TestIsEndOfStream(t *testing.T) {
	assert.True(t, IsEndOfStream(ErrEndOfStream))
	assert.True(t, IsEndOfStream(io.EOF))
	assert.False(t, IsEndOfStream(io.ErrUnexpectedEOF))
	assert.False(t, IsEndOfStream(readFailure(io.EOF)))
	assert.False(t, IsEndOfStream(nil))
}
