package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"lumijob/internal/models/db_models"
	"lumijob/internal/models/request_models"
	"lumijob/pkg/utils"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string]string
	failPut bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string]string)}
}

func (m *memoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if m.failPut {
		return errors.New("bucket offline")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = string(b)
	return nil
}

func (m *memoryStore) URL(_ context.Context, key string) (string, error) {
	return "https://media.test/" + key, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func newAccountService(f *fixture, store *memoryStore) AccountServiceInterface {
	if store == nil {
		return NewAccountService(f.accounts, f.profiles, nil, zap.NewNop())
	}
	return NewAccountService(f.accounts, f.profiles, store, zap.NewNop())
}

func upload(name, contentType, body string) FileUpload {
	return FileUpload{Name: name, ContentType: contentType, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestCreateAccountRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	svc := newAccountService(f, nil)
	ctx := context.Background()

	acc, err := svc.CreateAccount(ctx, request_models.CreateAccountRequest{Name: "Jane", Email: "Jane@X.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if acc.Email != "jane@x.com" || acc.Role != "" {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if _, err := svc.CreateAccount(ctx, request_models.CreateAccountRequest{Email: "jane@x.com"}); !errors.Is(err, utils.ErrAccountExists) {
		t.Fatalf("err = %v, want ErrAccountExists", err)
	}
}

func TestSetAndCheckRole(t *testing.T) {
	f := newFixture(t)
	svc := newAccountService(f, nil)
	ctx := context.Background()
	f.account(t, "jane@x.com", "", 0, 0)

	role, err := svc.CheckRole(ctx, "jane@x.com")
	if err != nil || role != "" {
		t.Fatalf("role before = %q, %v", role, err)
	}
	if err := svc.SetRole(ctx, "jane@x.com", "Company"); err != nil {
		t.Fatalf("set role: %v", err)
	}
	role, err = svc.CheckRole(ctx, "jane@x.com")
	if err != nil || role != db_models.RoleCompany {
		t.Fatalf("role after = %q, %v", role, err)
	}

	if err := svc.SetRole(ctx, "jane@x.com", "admin"); !errors.Is(err, utils.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
	if err := svc.SetRole(ctx, "ghost@x.com", "candidate"); !errors.Is(err, utils.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestUpdateProfileByRole(t *testing.T) {
	f := newFixture(t)
	svc := newAccountService(f, nil)
	ctx := context.Background()
	f.account(t, "jane@x.com", db_models.RoleCandidate, 0, 1)
	f.account(t, "acme@x.com", db_models.RoleCompany, 1, 0)

	err := svc.UpdateProfile(ctx, "jane@x.com", request_models.UpdateProfileRequest{
		Role: "candidate", Name: "Jane", City: "Berlin", Position: "SRE", SalaryMin: 10, SalaryMax: 20, Skills: []string{"go"},
	})
	if err != nil {
		t.Fatalf("update candidate: %v", err)
	}
	// a second update keeps fields it does not set
	if err := svc.UpdateProfile(ctx, "jane@x.com", request_models.UpdateProfileRequest{Role: "candidate", Country: "DE"}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	p, err := svc.GetCandidateProfile(ctx, "jane@x.com")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.City != "Berlin" || p.Country != "DE" || len(p.Skills) != 1 {
		t.Fatalf("unexpected profile: %+v", p)
	}

	if err := svc.UpdateProfile(ctx, "acme@x.com", request_models.UpdateProfileRequest{Role: "company", Name: "Acme", Website: "https://acme.test"}); err != nil {
		t.Fatalf("update company: %v", err)
	}
	c, err := f.profiles.FindCompanyByEmail(ctx, "acme@x.com")
	if err != nil || c == nil || c.Website != "https://acme.test" {
		t.Fatalf("company profile = %+v, %v", c, err)
	}

	if err := svc.UpdateProfile(ctx, "jane@x.com", request_models.UpdateProfileRequest{Role: "pirate"}); !errors.Is(err, utils.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
	if err := svc.UpdateProfile(ctx, "ghost@x.com", request_models.UpdateProfileRequest{Role: "candidate"}); !errors.Is(err, utils.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
	if _, err := svc.GetCandidateProfile(ctx, "acme@x.com"); !errors.Is(err, utils.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestUploadResumeEnablesApply(t *testing.T) {
	f := newFixture(t)
	store := newMemoryStore()
	svc := newAccountService(f, store)
	ctx := context.Background()
	f.candidate(t, "a@x.com", "", 1)
	job := f.job(t, "acme@x.com", "Go Developer")

	res, err := f.applications.Apply(ctx, "a@x.com", job.ID, "")
	if err != nil || res.Rejection != RejectResumeMissing {
		t.Fatalf("apply before upload: %+v, %v", res, err)
	}

	url, err := svc.UploadResume(ctx, "a@x.com", upload("cv.pdf", "application/pdf", "%PDF-1.7"))
	if err != nil {
		t.Fatalf("upload resume: %v", err)
	}
	if !strings.HasPrefix(url, "https://media.test/resumes/a@x.com/") || len(store.objects) != 1 {
		t.Fatalf("unexpected url %q, objects %v", url, store.objects)
	}

	res, err = f.applications.Apply(ctx, "a@x.com", job.ID, "")
	if err != nil || res.Rejected() {
		t.Fatalf("apply after upload: %+v, %v", res, err)
	}
	snap, _ := f.pipeline.FindApplicantByEmail(ctx, job.ID, "a@x.com")
	if snap == nil || snap.Resume != url {
		t.Fatalf("snapshot resume = %+v", snap)
	}
}

func TestUploadsNeverCreateCandidateProfile(t *testing.T) {
	f := newFixture(t)
	store := newMemoryStore()
	svc := newAccountService(f, store)
	ctx := context.Background()
	f.account(t, "fresh@x.com", db_models.RoleCandidate, 0, 1)
	job := f.job(t, "acme@x.com", "Go Developer")

	if _, err := svc.UploadResume(ctx, "fresh@x.com", upload("cv.pdf", "application/pdf", "%PDF-1.7")); !errors.Is(err, utils.ErrProfileNotFound) {
		t.Fatalf("resume err = %v, want ErrProfileNotFound", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("resume stored without a profile: %v", store.objects)
	}
	photo, err := svc.UpdatePhoto(ctx, "fresh@x.com", upload("me.jpg", "image/jpeg", "jpg"))
	if err != nil {
		t.Fatalf("update photo: %v", err)
	}
	if p, _ := f.profiles.FindCandidateByEmail(ctx, "fresh@x.com"); p != nil {
		t.Fatalf("profile created by upload: %+v", p)
	}

	res, err := f.applications.Apply(ctx, "fresh@x.com", job.ID, "")
	if err != nil || res.Rejection != RejectProfileMissing {
		t.Fatalf("apply = %+v, %v", res, err)
	}

	if err := svc.UpdateProfile(ctx, "fresh@x.com", request_models.UpdateProfileRequest{Role: "candidate", Name: "Fresh"}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	p, _ := f.profiles.FindCandidateByEmail(ctx, "fresh@x.com")
	if p == nil || p.Photo != photo {
		t.Fatalf("profile photo not carried over: %+v", p)
	}
}

func TestUpdatePhotoWritesAccountAndProfile(t *testing.T) {
	f := newFixture(t)
	svc := newAccountService(f, newMemoryStore())
	ctx := context.Background()
	f.account(t, "acme@x.com", db_models.RoleCompany, 1, 0)

	url, err := svc.UpdatePhoto(ctx, "acme@x.com", upload("logo.PNG", "image/png", "png"))
	if err != nil {
		t.Fatalf("update photo: %v", err)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}
	acc, _ := f.accounts.FindByEmail(ctx, "acme@x.com")
	company, _ := f.profiles.FindCompanyByEmail(ctx, "acme@x.com")
	if acc.Photo != url || company == nil || company.Photo != url {
		t.Fatalf("photo not written: account=%q company=%+v", acc.Photo, company)
	}
}

func TestUploadErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.candidate(t, "a@x.com", "", 1)
	f.account(t, "acme@x.com", db_models.RoleCompany, 1, 0)
	f.account(t, "fresh@x.com", db_models.RoleCandidate, 0, 1)

	broken := newMemoryStore()
	broken.failPut = true

	cases := []struct {
		name string
		svc  AccountServiceInterface
		call func(AccountServiceInterface) error
		want error
	}{
		{"no store", newAccountService(f, nil), func(s AccountServiceInterface) error {
			_, err := s.UploadResume(ctx, "a@x.com", upload("cv.pdf", "application/pdf", "x"))
			return err
		}, utils.ErrStorageError},
		{"store down", newAccountService(f, broken), func(s AccountServiceInterface) error {
			_, err := s.UpdatePhoto(ctx, "a@x.com", upload("me.jpg", "image/jpeg", "x"))
			return err
		}, utils.ErrStorageError},
		{"photo not an image", newAccountService(f, newMemoryStore()), func(s AccountServiceInterface) error {
			_, err := s.UpdatePhoto(ctx, "a@x.com", upload("me.txt", "text/plain", "x"))
			return err
		}, utils.ErrInvalidInput},
		{"empty file", newAccountService(f, newMemoryStore()), func(s AccountServiceInterface) error {
			_, err := s.UploadResume(ctx, "a@x.com", upload("cv.pdf", "application/pdf", ""))
			return err
		}, utils.ErrInvalidInput},
		{"company resume", newAccountService(f, newMemoryStore()), func(s AccountServiceInterface) error {
			_, err := s.UploadResume(ctx, "acme@x.com", upload("cv.pdf", "application/pdf", "x"))
			return err
		}, utils.ErrInvalidRole},
		{"resume before profile", newAccountService(f, newMemoryStore()), func(s AccountServiceInterface) error {
			_, err := s.UploadResume(ctx, "fresh@x.com", upload("cv.pdf", "application/pdf", "x"))
			return err
		}, utils.ErrProfileNotFound},
		{"unknown account", newAccountService(f, newMemoryStore()), func(s AccountServiceInterface) error {
			_, err := s.UpdatePhoto(ctx, "ghost@x.com", upload("me.jpg", "image/jpeg", "x"))
			return err
		}, utils.ErrAccountNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(tc.svc); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
