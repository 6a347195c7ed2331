package mid

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// Errors turns handler errors into errs.Error responses. Client mistakes log
// at WARN, server faults at ERROR with their detail withheld from the body.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.Newf(errs.Internal, "Internal Server Error")
			}

			level := slog.LevelWarn
			if appErr.HTTPStatus() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(ctx, level, "handled error during request",
				"err", err,
				"code", appErr.Code,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Newf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}
	}
}
