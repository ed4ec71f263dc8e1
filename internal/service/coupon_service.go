package service

import (
	"context"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/repository"

	"github.com/google/uuid"
)

// CouponService exposes the promotional coupon store. Creation happens
// out-of-band, so the surface is read and edit only.
type CouponService interface {
	List(ctx context.Context) ([]*domain.Coupon, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Coupon, error)
	Update(ctx context.Context, coupon *domain.Coupon) error
}

type couponService struct {
	coupons repository.CouponRepository
}

// NewCouponService creates a new instance of CouponService.
func NewCouponService(coupons repository.CouponRepository) CouponService {
	return &couponService{coupons: coupons}
}

func (s *couponService) List(ctx context.Context) ([]*domain.Coupon, error) {
	return s.coupons.List(ctx)
}

func (s *couponService) Get(ctx context.Context, id uuid.UUID) (*domain.Coupon, error) {
	return s.coupons.FindByID(ctx, id)
}

func (s *couponService) Update(ctx context.Context, coupon *domain.Coupon) error {
	return s.coupons.Update(ctx, coupon)
}
