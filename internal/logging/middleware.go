package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware gives every huma operation its own LogData and logs the outcome
// once the handler has written the response.
func Middleware(log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		operationID := ""
		if op := ctx.Operation(); op != nil {
			operationID = op.OperationID
		}
		logData.AddData("operation", operationID)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)

		endTimer := logData.AddTiming("duration")
		next(huma.WithContext(ctx, WithLogData(ctx.Context(), logData)))
		endTimer()

		status := ctx.Status()
		logData.AddData("status", status)
		entry := logData.Log()
		if status >= 500 {
			entry.Errorf("Handler.%v.Error", operationID)
			return
		}
		entry.Infof("Handler.%v.Complete", operationID)
	}
}
