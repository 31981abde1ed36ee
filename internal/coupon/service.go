package coupon

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListAvailable(ctx context.Context, storeID *string) ([]Coupon, error)
	// GetUsable loads a coupon for checkout and applies the caller-side
	// pre-filter Evaluate relies on.
	GetUsable(ctx context.Context, couponID string) (*Coupon, error)

	ListByStore(ctx context.Context, storeID string) ([]Coupon, error)
	Create(ctx context.Context, storeID string, input Input) (*Coupon, error)
	Update(ctx context.Context, storeID, couponID string, input Input) (*Coupon, error)
	Delete(ctx context.Context, storeID, couponID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) ListAvailable(ctx context.Context, storeID *string) ([]Coupon, error) {
	return s.repo.ListAvailable(ctx, storeID, s.now())
}

func (s *service) GetUsable(ctx context.Context, couponID string) (*Coupon, error) {
	c, err := s.repo.GetByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if !c.Usable(s.now()) {
		logger.FromCtx(ctx).Info("coupon rejected at checkout",
			zap.String("coupon_id", couponID),
			zap.Bool("is_active", c.IsActive),
			zap.Time("valid_until", c.ValidUntil),
		)
		return nil, ErrCouponNotUsable
	}
	return c, nil
}

func (s *service) ListByStore(ctx context.Context, storeID string) ([]Coupon, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) Create(ctx context.Context, storeID string, input Input) (*Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	c := fromInput(input)
	c.StoreID = &storeID

	if err := s.repo.Create(ctx, c); err != nil {
		logger.FromCtx(ctx).Error("failed to create coupon",
			zap.String("layer", "service"),
			zap.String("store_id", storeID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.FromCtx(ctx).Info("coupon created",
		zap.String("coupon_id", c.ID),
		zap.String("store_id", storeID),
	)
	return c, nil
}

func (s *service) Update(ctx context.Context, storeID, couponID string, input Input) (*Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	c := fromInput(input)
	c.ID = couponID
	c.StoreID = &storeID

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, storeID, couponID string) error {
	return s.repo.Delete(ctx, couponID, storeID)
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidCouponName
	}
	if !in.DiscountType.Valid() {
		return ErrInvalidDiscountType
	}
	if !in.DiscountValue.IsPositive() {
		return ErrInvalidDiscountValue
	}
	if in.DiscountType == DiscountPercentage && in.DiscountValue.GreaterThan(hundred) {
		return ErrInvalidDiscountValue
	}
	if !in.ValidFrom.Before(in.ValidUntil) {
		return ErrInvalidValidity
	}
	return nil
}

func fromInput(in Input) *Coupon {
	return &Coupon{
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		DiscountType:      in.DiscountType,
		DiscountValue:     in.DiscountValue,
		MinOrderAmount:    in.MinOrderAmount,
		MaxDiscountAmount: in.MaxDiscountAmount,
		ValidFrom:         in.ValidFrom,
		ValidUntil:        in.ValidUntil,
		IsActive:          in.IsActive,
		UsageLimit:        in.UsageLimit,
	}
}
