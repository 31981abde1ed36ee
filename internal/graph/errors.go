package graph

import (
	"context"
	"errors"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/coupon"
	"storefront-be/internal/logger"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/purchaserequest"
	"storefront-be/internal/store"
	"storefront-be/internal/user"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	errBadInput = errors.New("invalid input")
)

// Error codes carried in extensions.code.
const (
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodePaymentGateway     = "PAYMENT_GATEWAY_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

var codeByError = []struct {
	err  error
	code string
}{
	{errBadInput, CodeBadUserInput},
	{checkout.ErrEmptyCart, CodeBadUserInput},
	{checkout.ErrInvalidLine, CodeBadUserInput},
	{checkout.ErrMixedStores, CodeBadUserInput},
	{checkout.ErrCouponStoreMismatch, CodeBadUserInput},
	{cart.ErrInvalidQuantity, CodeBadUserInput},
	{product.ErrInvalidQuantity, CodeBadUserInput},
	{product.ErrEmptyUpdate, CodeBadUserInput},
	{coupon.ErrCouponNotUsable, CodeBadUserInput},
	{coupon.ErrInvalidDiscountType, CodeBadUserInput},
	{coupon.ErrInvalidDiscountValue, CodeBadUserInput},
	{coupon.ErrInvalidValidity, CodeBadUserInput},
	{coupon.ErrInvalidCouponName, CodeBadUserInput},
	{order.ErrInvalidStatus, CodeBadUserInput},
	{user.ErrInvalidRole, CodeBadUserInput},
	{purchaserequest.ErrUnknownProduct, CodeBadUserInput},
	{purchaserequest.ErrInvalidQuantity, CodeBadUserInput},
	{purchaserequest.ErrInvalidStatus, CodeBadUserInput},
	{purchaserequest.ErrEmptyUpdate, CodeBadUserInput},

	{ErrUnauthenticated, CodeUnauthenticated},
	{user.ErrInvalidCredentials, CodeUnauthenticated},
	{ErrForbidden, CodeForbidden},
	{order.ErrForbidden, CodeForbidden},

	{order.ErrOrderNotFound, CodeNotFound},
	{coupon.ErrCouponNotFound, CodeNotFound},
	{store.ErrStoreNotFound, CodeNotFound},
	{product.ErrItemNotFound, CodeNotFound},
	{cart.ErrCartItemNotFound, CodeNotFound},
	{notification.ErrNotificationNotFound, CodeNotFound},
	{user.ErrUserNotFound, CodeNotFound},
	{purchaserequest.ErrRequestNotFound, CodeNotFound},

	{user.ErrEmailExists, CodeConflict},
	{order.ErrInvalidTransition, CodeConflict},
	{order.ErrPaymentRequired, CodeConflict},
	{order.ErrInsufficientStock, CodeConflict},
	{order.ErrCouponExhausted, CodeConflict},
	{product.ErrInsufficientStock, CodeConflict},
	{purchaserequest.ErrInvalidTransition, CodeConflict},
	{purchaserequest.ErrNotEditable, CodeConflict},

	{payment.ErrGatewayDown, CodeServiceUnavailable},
}

// presentError turns a resolver error into a GraphQL error at the field's
// path. Unknown errors are logged and reported without their message.
func presentError(ctx context.Context, err error, field *ast.Field) *gqlerror.Error {
	gqlErr := &gqlerror.Error{
		Err:  err,
		Path: ast.Path{ast.PathName(field.Alias)},
	}
	if field.Position != nil {
		gqlErr.Locations = []gqlerror.Location{{Line: field.Position.Line, Column: field.Position.Column}}
	}

	for _, m := range codeByError {
		if errors.Is(err, m.err) {
			gqlErr.Message = err.Error()
			gqlErr.Extensions = map[string]any{"code": m.code}
			return gqlErr
		}
	}

	var gwErr *payment.GatewayError
	if errors.As(err, &gwErr) {
		logger.FromCtx(ctx).Warn("payment gateway rejected request",
			zap.Int("status", gwErr.StatusCode),
			zap.String("code", gwErr.Code),
		)
		gqlErr.Message = gwErr.Message
		gqlErr.Extensions = map[string]any{"code": CodePaymentGateway, "gatewayCode": gwErr.Code}
		return gqlErr
	}

	logger.FromCtx(ctx).Error("resolver failed",
		zap.String("field", field.Name),
		zap.Error(err),
	)
	gqlErr.Message = "internal server error"
	gqlErr.Extensions = map[string]any{"code": CodeInternal}
	return gqlErr
}
