package queue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingQueue struct {
	subject string
	data    []byte
	err     error
}

func (q *recordingQueue) Publish(subject string, data []byte) error {
	q.subject, q.data = subject, data
	return q.err
}

func (q *recordingQueue) Subscribe(string, func([]byte) error) error { return nil }

func (q *recordingQueue) Close() error { return nil }

func TestPublishJSON(t *testing.T) {
	q := &recordingQueue{}

	err := PublishJSON(q, SubjectReportGenerated, map[string]string{"report_id": "employee_masterlist"})
	require.NoError(t, err)

	assert.Equal(t, SubjectReportGenerated, q.subject)
	var got map[string]string
	require.NoError(t, json.Unmarshal(q.data, &got))
	assert.Equal(t, "employee_masterlist", got["report_id"])
}

func TestPublishJSON_NilQueue(t *testing.T) {
	assert.NoError(t, PublishJSON(nil, SubjectReportGenerated, struct{}{}))
}

func TestPublishJSON_Errors(t *testing.T) {
	q := &recordingQueue{err: errors.New("broker down")}
	assert.EqualError(t, PublishJSON(q, SubjectEvaluationPeriodChange, struct{}{}), "broker down")

	err := PublishJSON(&recordingQueue{}, SubjectReportGenerated, make(chan int))
	assert.ErrorContains(t, err, "marshal reports.generated event")
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New("kafka", "kafka://localhost", zap.NewNop())
	assert.EqualError(t, err, `unknown queue driver "kafka"`)
}
