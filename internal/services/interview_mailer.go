package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lumijob/internal/repositories"
	"lumijob/pkg/events"
)

const inviteTimeout = 30 * time.Second

// InterviewMailer is a Publisher that forwards every event to next and, for
// scheduled interviews, mails the candidate an invitation in the background.
type InterviewMailer struct {
	next        events.Publisher
	mail        IMailService
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
	logger      *zap.Logger
	wg          sync.WaitGroup
}

func NewInterviewMailer(
	next events.Publisher,
	mail IMailService,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	logger *zap.Logger,
) *InterviewMailer {
	return &InterviewMailer{
		next:        next,
		mail:        mail,
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (m *InterviewMailer) Publish(ctx context.Context, e events.Event) error {
	err := m.next.Publish(ctx, e)
	if e.Type == events.InterviewScheduled && e.Email != "" {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.sendInvite(e)
		}()
	}
	return err
}

// Wait blocks until queued invitations have been attempted.
func (m *InterviewMailer) Wait() {
	m.wg.Wait()
}

func (m *InterviewMailer) sendInvite(e events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), inviteTimeout)
	defer cancel()

	invite := InterviewInvite{
		Date:        e.Attributes["date"],
		Time:        e.Attributes["time"],
		MeetingLink: e.Attributes["meetingLink"],
	}
	if jobID, err := uuid.Parse(e.JobID); err == nil {
		if job, err := m.jobRepo.FindByID(ctx, jobID); err == nil && job != nil {
			invite.JobTitle = job.Title
			invite.CompanyName = job.CompanyName
		}
	}
	if profile, err := m.profileRepo.FindCandidateByEmail(ctx, e.Email); err == nil && profile != nil {
		invite.CandidateName = profile.Name
	}

	if err := m.mail.SendInterviewInvitation(ctx, e.Email, invite); err != nil {
		m.logger.Warn("send interview invitation",
			zap.String("job_id", e.JobID),
			zap.String("email", e.Email),
			zap.Error(err))
		return
	}
	m.logger.Info("interview invitation sent", zap.String("job_id", e.JobID), zap.String("email", e.Email))
}
