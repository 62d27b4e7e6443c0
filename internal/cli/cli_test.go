package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid argument",
			err:  errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad glob"),
			want: 2,
		},
		{
			name: "load failure",
			err:  errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("show-info failed"),
			want: 3,
		},
		{
			name: "unknown package",
			err:  errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("unknown package foo"),
			want: 4,
		},
		{
			name: "engine fatal",
			err:  errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("state mismatch"),
			want: 5,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCodeForError(tc.err))
		})
	}
}

func TestErrorMessagePrefersBuilderMsg(t *testing.T) {
	err := errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("unknown package foo")
	assert.Equal(t, "unknown package foo", errorMessage(err))
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))
}
