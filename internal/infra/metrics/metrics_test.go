package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAuthAttempt(t *testing.T) {
	success := AuthAttemptsTotal.WithLabelValues(OperationLogin, OutcomeSuccess)
	failure := AuthAttemptsTotal.WithLabelValues(OperationLogin, OutcomeFailure)
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	RecordAuthAttempt(OperationLogin, nil)
	RecordAuthAttempt(OperationLogin, errors.New("bad password"))
	RecordAuthAttempt(OperationLogin, errors.New("unknown email"))

	assert.InDelta(t, beforeSuccess+1, testutil.ToFloat64(success), 0)
	assert.InDelta(t, beforeFailure+2, testutil.ToFloat64(failure), 0)
}
