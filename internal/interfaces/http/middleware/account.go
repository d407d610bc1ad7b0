package middleware

import (
	"net/http"

	"github.com/billfold/backend/internal/infrastructure/logger"
	"github.com/billfold/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHeader carries the caller's account identifier
const AccountHeader = "X-Account-ID"

// Account resolves the account from the X-Account-ID header and stores
// it in the request context. Requests without a valid account UUID are
// rejected before reaching any handler.
func Account() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AccountHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeMissingAccount,
				"missing "+AccountHeader+" header",
				GetRequestID(c),
			))
			return
		}

		accountID, err := uuid.Parse(header)
		if err != nil || accountID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeMissingAccount,
				"invalid "+AccountHeader+" header",
				GetRequestID(c),
			))
			return
		}

		c.Set(AccountIDKey, accountID)

		ctx, _ := logger.WithAccountID(c.Request.Context(), logger.FromContext(c.Request.Context()), accountID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetAccountID returns the account resolved by Account, or uuid.Nil
func GetAccountID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(AccountIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
