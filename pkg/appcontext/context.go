package appcontext

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextId int

const (
	runIdKeyId contextId = iota
	actionKeyId
	fileKeyId
	requestIdKeyId
)

func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKeyId, requestId)
}

func WithRunId(ctx context.Context, runId string) context.Context {
	return context.WithValue(ctx, runIdKeyId, runId)
}

func WithAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, actionKeyId, action)
}

func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKeyId, path)
}

func RunIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	runId, _ := ctx.Value(runIdKeyId).(string)
	return runId
}

func LoggerFromContext(logger logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logger
	}

	result := logger

	if ctxAction, ok := ctx.Value(actionKeyId).(string); ok && ctxAction != "" {
		result = result.WithField("action", ctxAction)
	}

	if ctxRunId, ok := ctx.Value(runIdKeyId).(string); ok && ctxRunId != "" {
		result = result.WithField("run_id", ctxRunId)
	}

	if ctxFile, ok := ctx.Value(fileKeyId).(string); ok && ctxFile != "" {
		result = result.WithField("file", ctxFile)
	}

	if ctxRequestId, ok := ctx.Value(requestIdKeyId).(string); ok && ctxRequestId != "" {
		result = result.WithField("request_id", ctxRequestId)
	}

	return result
}
