package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStage(t *testing.T) {
	before := testutil.ToFloat64(StageTotal.WithLabelValues(StageFetch, "error"))
	ObserveStage(StageFetch, errors.New("boom"))
	ObserveStage(StageFetch, nil)

	assert.Equal(t, before+1, testutil.ToFloat64(StageTotal.WithLabelValues(StageFetch, "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(StageTotal.WithLabelValues(StageFetch, "success")), float64(1))
}

func TestObserveLLM(t *testing.T) {
	ObserveLLM(time.Now().Add(-time.Second), nil)
	assert.Equal(t, 1, testutil.CollectAndCount(LLMRequestDuration))
}
