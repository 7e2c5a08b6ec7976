// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gonotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// requestContextKey - ключ Locals, под которым лежит context.Context запроса.
const requestContextKey = "requestContext"

// NewRequestIDMiddleware присваивает запросу идентификатор (из заголовка или новый),
// возвращает его в ответе и кладет контекст с ним и логгером в Locals.
func NewRequestIDMiddleware(log *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		var base context.Context = c.Context()
		ctx := logger.NewRequestIDContext(base, c.Get(HeaderRequestID))
		if log != nil {
			ctx = logger.NewContext(ctx, log)
		}

		id, _ := logger.GetRequestID(ctx)
		c.Set(HeaderRequestID, id)
		c.Locals(requestContextKey, ctx)

		return c.Next()
	}
}

// RequestContext возвращает контекст запроса, подготовленный NewRequestIDMiddleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(requestContextKey).(context.Context); ok {
		return ctx
	}
	var ctx context.Context = c.Context()
	return ctx
}
