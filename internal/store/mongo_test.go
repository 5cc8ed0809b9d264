package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: CodeDeadlineExceeded,
		},
		{
			name: "wrapped deadline exceeded",
			err:  fmt.Errorf("find: %w", context.DeadlineExceeded),
			want: CodeDeadlineExceeded,
		},
		{
			name: "network label",
			err:  mongo.CommandError{Message: "connection reset", Labels: []string{"NetworkError"}},
			want: CodeUnavailable,
		},
		{
			name: "unauthorized",
			err:  mongo.CommandError{Code: 13, Message: "not authorized"},
			want: CodePermissionDenied,
		},
		{
			name: "throttled",
			err:  mongo.CommandError{Code: 16500, Message: "request rate too large"},
			want: CodeResourceExhausted,
		},
		{
			name: "anything else",
			err:  errors.New("boom"),
			want: CodeInternal,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(classify("op", tc.err)); got != tc.want {
				t.Fatalf("classify(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}

	if classify("op", nil) != nil {
		t.Fatal("classify(nil) must be nil")
	}
}
