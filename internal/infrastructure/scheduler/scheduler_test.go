package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu   sync.Mutex
	runs map[string][]bool
}

func (r *recorder) RecordJobRun(job string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runs == nil {
		r.runs = map[string][]bool{}
	}
	r.runs[job] = append(r.runs[job], success)
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(nil)
	assert.Error(t, s.Add("every tuesday", "x", func(context.Context) error { return nil }))
	assert.NoError(t, s.Add("@hourly", "x", func(context.Context) error { return nil }))
}

func TestRunRecordsOutcome(t *testing.T) {
	rec := &recorder{}
	s := New(rec)

	s.run("ok", func(context.Context) error { return nil })
	s.run("broken", func(context.Context) error { return errors.New("boom") })

	assert.Equal(t, []bool{true}, rec.runs["ok"])
	assert.Equal(t, []bool{false}, rec.runs["broken"])
}
