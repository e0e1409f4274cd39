package extensions

import (
	"time"

	"go.uber.org/zap"

	knit "github.com/knit-fn/knit-go"
)

// LoggingInterceptor returns an interceptor that logs every business-method
// invocation passing through it, with outcome and duration.
func LoggingInterceptor(logger *zap.Logger) knit.Interceptor {
	return func(inv *knit.Invocation, proceed func() (any, error)) (any, error) {
		start := time.Now()
		logger.Debug("invoking",
			zap.String("bean", inv.Bean.Name()),
			zap.String("method", inv.Method),
		)

		result, err := proceed()

		duration := time.Since(start)
		if err != nil {
			logger.Warn("invocation failed",
				zap.String("bean", inv.Bean.Name()),
				zap.String("method", inv.Method),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			logger.Debug("invocation completed",
				zap.String("bean", inv.Bean.Name()),
				zap.String("method", inv.Method),
				zap.Duration("duration", duration),
			)
		}

		return result, err
	}
}
