package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/internal/repositories"
	"lumijob/pkg/utils"
)

func newSubscriptionService(t *testing.T, f *fixture) SubscriptionServiceInterface {
	t.Helper()
	svc := NewSubscriptionService(f.plans, f.accounts, zap.NewNop())
	if err := svc.SeedPlans(context.Background()); err != nil {
		t.Fatalf("seed plans: %v", err)
	}
	return svc
}

func TestSeedPlansIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(t, f)
	if err := svc.SeedPlans(context.Background()); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	plans, err := svc.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if len(plans) != len(DefaultPlans) {
		t.Fatalf("plans = %d, want %d", len(plans), len(DefaultPlans))
	}
	for i := 1; i < len(plans); i++ {
		if plans[i-1].Price > plans[i].Price {
			t.Fatalf("plans not ordered by price: %+v", plans)
		}
	}
}

func TestApplyPlanSetsQuotaForRole(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(t, f)
	ctx := context.Background()
	f.account(t, "a@x.com", db_models.RoleCandidate, 0, 0)
	f.account(t, "acme@x.com", db_models.RoleCompany, 0, 0)

	status, err := svc.ApplyPlan(ctx, request_models.ApplySubscriptionRequest{Email: "a@x.com", PlanCode: "candidate_standard", Provider: "stripe", ProviderRef: "pi_1", AmountMinor: 999})
	if err != nil {
		t.Fatalf("apply candidate plan: %v", err)
	}
	if status.CanApply != 10 || status.CanPost != 0 {
		t.Fatalf("candidate status = %+v", status)
	}
	ok, err := f.quota.CanAccountApply(ctx, "a@x.com")
	if err != nil || !ok {
		t.Fatalf("CanAccountApply = %v, %v", ok, err)
	}

	if _, err := svc.ApplyPlan(ctx, request_models.ApplySubscriptionRequest{Email: "acme@x.com", PlanCode: "company_premium"}); err != nil {
		t.Fatalf("apply company plan: %v", err)
	}
	acc, _ := f.accounts.FindByEmail(ctx, "acme@x.com")
	if acc.CanPost != 15 || acc.Package != "company_premium" || acc.Status != "Premium" {
		t.Fatalf("company account = %+v", acc)
	}

	// upgrading replaces the previous subscription row
	if _, err := svc.ApplyPlan(ctx, request_models.ApplySubscriptionRequest{Email: "a@x.com", PlanCode: "candidate_premium"}); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	var active int64
	f.db.Model(&db_models.Subscription{}).
		Where("account_email = ? AND status = ?", "a@x.com", db_models.SubStatusActive).
		Count(&active)
	if active != 1 {
		t.Fatalf("active subscriptions = %d, want 1", active)
	}
}

func TestApplyPlanErrors(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(t, f)
	ctx := context.Background()
	f.account(t, "a@x.com", db_models.RoleCandidate, 0, 0)
	f.account(t, "norole@x.com", "", 0, 0)

	cases := []struct {
		name string
		req  request_models.ApplySubscriptionRequest
		want error
	}{
		{"unknown plan", request_models.ApplySubscriptionRequest{Email: "a@x.com", PlanCode: "gold"}, utils.ErrPlanNotFound},
		{"unknown account", request_models.ApplySubscriptionRequest{Email: "ghost@x.com", PlanCode: "candidate_basic"}, utils.ErrAccountNotFound},
		{"wrong role", request_models.ApplySubscriptionRequest{Email: "a@x.com", PlanCode: "company_basic"}, utils.ErrInvalidRole},
		{"no role", request_models.ApplySubscriptionRequest{Email: "norole@x.com", PlanCode: "candidate_basic"}, utils.ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ApplyPlan(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBookmarks(t *testing.T) {
	f := newFixture(t)
	svc := NewBookmarkService(repositories.NewBookmarkRepository(f.db))
	ctx := context.Background()

	bm, err := svc.AddBookmark(ctx, request_models.BookmarkRequest{Email: "A@x.com", JobID: "J1", JobTitle: "Go Developer"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddBookmark(ctx, request_models.BookmarkRequest{Email: "b@x.com", JobID: "J2"}); err != nil {
		t.Fatalf("add other: %v", err)
	}

	list, err := svc.ListBookmarks(ctx, "a@x.com")
	if err != nil || len(list) != 1 || list[0].JobID != "J1" {
		t.Fatalf("list = %+v, %v", list, err)
	}

	if err := svc.RemoveBookmark(ctx, bm.ID.String(), "b@x.com"); !errors.Is(err, utils.ErrBookmarkNotFound) {
		t.Fatalf("other owner: err = %v, want ErrBookmarkNotFound", err)
	}
	if err := svc.RemoveBookmark(ctx, bm.ID.String(), "a@x.com"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveBookmark(ctx, bm.ID.String(), ""); !errors.Is(err, utils.ErrBookmarkNotFound) {
		t.Fatalf("err = %v, want ErrBookmarkNotFound", err)
	}
	if err := svc.RemoveBookmark(ctx, "nope", ""); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
