package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(t *testing.T) (*logrus.Logger, *bytes.Buffer) {
	t.Helper()
	logger, err := SetupLogging("debug")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestSetupLogging(t *testing.T) {
	logger, err := SetupLogging("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.Level)

	_, err = SetupLogging("loud")
	assert.Error(t, err)
}

func TestLogData(t *testing.T) {
	logger, buf := bufferLogger(t)
	logData := NewLogData(logger)
	logData.AddData("account", "abc")
	logData.AddTiming("db")()
	logData.Log().Info("done")

	line := lastLine(t, buf)
	assert.Equal(t, "abc", line["account"])
	assert.Contains(t, line, "db")
	assert.Equal(t, "info", line["loglevel"])
}

func TestLogDataContext(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(logrus.New())
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLoggingWrapper(t *testing.T) {
	logger, buf := bufferLogger(t)

	ok := LoggingWrapper("Ok", logger, func(w http.ResponseWriter, r *http.Request, ld *LogData) error {
		assert.Same(t, ld, GetLogData(r.Context()))
		w.WriteHeader(http.StatusOK)
		return nil
	})
	ok(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	line := lastLine(t, buf)
	assert.Equal(t, "Handler.Ok.Complete", line["msg"])
	assert.Contains(t, line, "duration")

	failing := LoggingWrapper("Fail", logger, func(http.ResponseWriter, *http.Request, *LogData) error {
		return errors.New("boom")
	})
	failing(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	line = lastLine(t, buf)
	assert.Equal(t, "Handler.Fail.Error", line["msg"])
	assert.Equal(t, "boom", line["error"])
}
