package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/models/response_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

// DefaultPlans is the catalog seeded on startup.
var DefaultPlans = []db_models.Plan{
	{Code: "candidate_basic", Name: "Basic", Role: db_models.RoleCandidate, PriceMinor: 0, Currency: "USD", ApplyLimit: 3, IsActive: true,
		Features: datatypes.NewJSONSlice([]string{"3 applications"})},
	{Code: "candidate_standard", Name: "Standard", Role: db_models.RoleCandidate, PriceMinor: 999, Currency: "USD", ApplyLimit: 10, IsActive: true,
		Features: datatypes.NewJSONSlice([]string{"10 applications", "profile highlight"})},
	{Code: "candidate_premium", Name: "Premium", Role: db_models.RoleCandidate, PriceMinor: 1999, Currency: "USD", ApplyLimit: 30, IsActive: true,
		Features: datatypes.NewJSONSlice([]string{"30 applications", "premium badge"})},
	{Code: "company_basic", Name: "Basic", Role: db_models.RoleCompany, PriceMinor: 0, Currency: "USD", PostLimit: 1, IsActive: true,
		Features: datatypes.NewJSONSlice([]string{"1 job post"})},
	{Code: "company_standard", Name: "Standard", Role: db_models.RoleCompany, PriceMinor: 2999, Currency: "USD", PostLimit: 5, IsActive: true,
		Features: datatypes.NewJSONSlice([]string{"5 job posts"})},
	{Code: "company_premium", Name: "Premium", Role: db_models.RoleCompany, PriceMinor: 5999, Currency: "USD", PostLimit: 15, IsActive: true,
		Features: datatypes.NewJSONSlice([]string{"15 job posts", "featured listings"})},
}

type SubscriptionServiceInterface interface {
	ListPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	ApplyPlan(ctx context.Context, req request_models.ApplySubscriptionRequest) (response_models.SubscriptionStatusResponse, error)
	SeedPlans(ctx context.Context) error
}

type SubscriptionService struct {
	planRepo    repositories.PlanRepository
	accountRepo repositories.AccountRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewSubscriptionService(
	planRepo repositories.PlanRepository,
	accountRepo repositories.AccountRepository,
	logger *zap.Logger,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		planRepo:    planRepo,
		accountRepo: accountRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SubscriptionService) ListPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", utils.ErrDatabaseError)
	}
	out := make([]response_models.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, response_models.NewPlanResponse(p))
	}
	return out, nil
}

// ApplyPlan sets the account's package and the quota matching the plan's
// role. The account must already hold that role.
func (s *SubscriptionService) ApplyPlan(ctx context.Context, req request_models.ApplySubscriptionRequest) (response_models.SubscriptionStatusResponse, error) {
	email := normalizeEmail(req.Email)

	plan, err := s.planRepo.FindActiveByCode(ctx, strings.TrimSpace(req.PlanCode))
	if err != nil {
		return response_models.SubscriptionStatusResponse{}, fmt.Errorf("find plan: %w", utils.ErrDatabaseError)
	}
	if plan == nil {
		return response_models.SubscriptionStatusResponse{}, utils.ErrPlanNotFound
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return response_models.SubscriptionStatusResponse{}, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if account == nil {
		return response_models.SubscriptionStatusResponse{}, utils.ErrAccountNotFound
	}
	if account.Role != plan.Role {
		return response_models.SubscriptionStatusResponse{}, utils.ErrInvalidRole
	}

	update := repositories.SubscriptionUpdate{Package: plan.Code, Status: plan.Name}
	canPost, canApply := account.CanPost, account.CanApply
	switch plan.Role {
	case db_models.RoleCompany:
		canPost = plan.PostLimit
		update.CanPost = &canPost
	case db_models.RoleCandidate:
		canApply = plan.ApplyLimit
		update.CanApply = &canApply
	}
	if err := s.accountRepo.UpdateSubscription(ctx, email, update); err != nil {
		return response_models.SubscriptionStatusResponse{}, fmt.Errorf("update subscription: %w", utils.ErrDatabaseError)
	}

	currency := req.Currency
	if currency == "" {
		currency = plan.Currency
	}
	sub := &db_models.Subscription{
		AccountEmail: email,
		PlanCode:     plan.Code,
		Status:       db_models.SubStatusActive,
		StartsAt:     s.now().UnixMilli(),
		Provider:     req.Provider,
		ProviderRef:  req.ProviderRef,
		AmountMinor:  req.AmountMinor,
		Currency:     strings.ToUpper(currency),
	}
	if err := s.planRepo.RecordSubscription(ctx, sub); err != nil {
		// quotas are already applied; only the history row is missing
		s.logger.Error("record subscription",
			zap.String("email", email),
			zap.String("plan", plan.Code),
			zap.Error(err))
	}

	return response_models.SubscriptionStatusResponse{
		Email:    email,
		PlanCode: plan.Code,
		Package:  plan.Code,
		Status:   plan.Name,
		StartsAt: sub.StartsAt,
		CanPost:  canPost,
		CanApply: canApply,
	}, nil
}

func (s *SubscriptionService) SeedPlans(ctx context.Context) error {
	plans := make([]db_models.Plan, len(DefaultPlans))
	copy(plans, DefaultPlans)
	n, err := s.planRepo.EnsurePlans(ctx, plans)
	if err != nil {
		return fmt.Errorf("seed plans: %w", utils.ErrDatabaseError)
	}
	if n > 0 {
		s.logger.Info("plans seeded", zap.Int64("inserted", n))
	}
	return nil
}
