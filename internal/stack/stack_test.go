package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack_PushPop(t *testing.T) {
	s := New(2)
	defer s.Release()

	require.True(t, s.Push(Frame{Kind: FrameArray, Remaining: 3}))
	require.True(t, s.Push(Frame{Kind: FrameStruct, Remaining: 1, Expecting: ExpectingKey}))
	require.False(t, s.Push(Frame{Kind: FrameArray}), "third push exceeds max depth 2")

	top := s.Top()
	require.Equal(t, FrameStruct, top.Kind)

	f, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, FrameStruct, f.Kind)
	require.Equal(t, 1, s.Len())

	f, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, FrameArray, f.Kind)

	_, ok = s.Pop()
	require.False(t, ok)
}

func TestStack_ResetKeepsCapacity(t *testing.T) {
	s := New(4)
	defer s.Release()

	s.Push(Frame{Kind: FrameArray})
	s.Push(Frame{Kind: FrameArray})
	s.Reset()
	require.Equal(t, 0, s.Len())
	require.Nil(t, s.Top())
}
