package pipeline_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{distill.Errorf(distill.ETIMEOUT, "Deadline exceeded."), true},
		{distill.Errorf(distill.EUNAVAILABLE, "Backend down."), true},
		{distill.Errorf(distill.EINVALID, "Bad input."), false},
		{errors.New("connection reset by peer"), true},
		{errors.New("503 Service Unavailable"), true},
		{errors.New("Too Many Requests"), true},
		{errors.New("dial tcp: network is unreachable"), true},
		{errors.New("request timed out"), true},
		{errors.New("temporarily overloaded"), true},
		{errors.New("parse error at byte 42"), false},
		{errors.New("nil pointer dereference"), false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.err), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pipeline.IsTransient(tt.err))
		})
	}
}

func TestIsTransient_Wrapped(t *testing.T) {
	t.Parallel()

	inner := distill.Errorf(distill.ETIMEOUT, "Deadline exceeded.")
	wrapped := fmt.Errorf("fetch page: %w", inner)
	assert.True(t, pipeline.IsTransient(wrapped))
}
