package apperr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "usage", err: Usage("no output file entered"), want: 1},
		{name: "invalid argument", err: New(KindInvalidArgument, "x.pdf", errors.New("does not exist")), want: 1},
		{name: "directory unreadable", err: New(KindDirectoryUnreadable, "dir", errors.New("permission denied")), want: 2},
		{name: "output directory", err: New(KindOutputDirectory, "out", errors.New("read-only")), want: 2},
		{name: "merge io", err: New(KindMergeIO, "a.pdf", errors.New("malformed")), want: 2},
		{name: "unclassified", err: errors.New("boom"), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	t.Parallel()

	base := New(KindMergeIO, "a.pdf", errors.New("bad xref"))
	wrapped := fmt.Errorf("merging: %w", errors.Wrap(base, "step 2"))

	require.Equal(t, KindMergeIO, KindOf(wrapped))
	require.True(t, Is(wrapped, KindMergeIO))
	require.False(t, Is(nil, KindMergeIO))
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.pdf: bad xref", New(KindMergeIO, "a.pdf", errors.New("bad xref")).Error())
	assert.Equal(t, "no output file entered", Usage("no output file entered").Error())
	assert.Equal(t, "dir: directory unreadable", New(KindDirectoryUnreadable, "dir", nil).Error())
}
