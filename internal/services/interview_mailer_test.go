package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"lumijob/internal/models/db_models"
	"lumijob/pkg/events"
)

type fakeMail struct {
	mu      sync.Mutex
	to      []string
	invites []InterviewInvite
	err     error
}

func (f *fakeMail) SendInterviewInvitation(_ context.Context, to string, invite InterviewInvite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.to = append(f.to, to)
	f.invites = append(f.invites, invite)
	return f.err
}

func TestInterviewMailerSendsInvitation(t *testing.T) {
	f := newFixture(t)
	f.candidate(t, "rahim@example.com", "resume.pdf", 3)
	job := f.job(t, "hr@acme.com", "Platform Engineer")

	mail := &fakeMail{}
	mailer := NewInterviewMailer(f.publisher, mail, f.jobs, f.profiles, zap.NewNop())
	pipeline := NewPipelineService(f.jobs, f.pipeline, mailer, zap.NewNop())

	applyOK(t, f, "rahim@example.com", job.ID)
	if _, err := pipeline.ScheduleInterview(context.Background(), job.ID, "rahim@example.com", db_models.InterviewSchedule{
		Date:        "2026-11-02",
		Time:        "10:30",
		MeetingLink: "https://meet.example.com/xyz",
	}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	mailer.Wait()

	if len(mail.invites) != 1 || mail.to[0] != "rahim@example.com" {
		t.Fatalf("invites = %+v to %v", mail.invites, mail.to)
	}
	got := mail.invites[0]
	want := InterviewInvite{
		CandidateName: "Candidate rahim@example.com",
		JobTitle:      "Platform Engineer",
		CompanyName:   "Acme",
		Date:          "2026-11-02",
		Time:          "10:30",
		MeetingLink:   "https://meet.example.com/xyz",
	}
	if got != want {
		t.Fatalf("invite = %+v, want %+v", got, want)
	}
	if types := f.publisher.types(); types[len(types)-1] != events.InterviewScheduled {
		t.Fatalf("event not forwarded: %v", types)
	}
}

func TestInterviewMailerIgnoresOtherEventsAndMailFailures(t *testing.T) {
	f := newFixture(t)
	mail := &fakeMail{err: errors.New("smtp down")}
	mailer := NewInterviewMailer(f.publisher, mail, f.jobs, f.profiles, zap.NewNop())

	if err := mailer.Publish(context.Background(), events.Event{Type: events.ApplicationCreated, Email: "a@b.com"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := mailer.Publish(context.Background(), events.Event{Type: events.InterviewScheduled, Email: "a@b.com", JobID: "not-a-uuid"}); err != nil {
		t.Fatalf("mail failure leaked into publish: %v", err)
	}
	mailer.Wait()

	if len(mail.invites) != 1 || mail.invites[0].JobTitle != "" {
		t.Fatalf("invites = %+v", mail.invites)
	}
	if len(f.publisher.types()) != 2 {
		t.Fatalf("forwarded = %v", f.publisher.types())
	}
}

func TestInviteMessageRendering(t *testing.T) {
	svc, err := NewSMTPMailService(SMTPConfig{Host: "smtp.example.com", From: "jobs@lumijob.com", FromName: "LumiJob"})
	if err != nil {
		t.Fatalf("new mail service: %v", err)
	}
	s := svc.(*smtpMailService)

	html, text, err := s.renderInvite(mailData{
		InterviewInvite: InterviewInvite{JobTitle: "SRE", CompanyName: "Acme", Date: "2026-11-02", Time: "10:30", MeetingLink: "https://meet.example.com/a"},
		Title:           "Interview scheduled: SRE",
		AppName:         "LumiJob",
		Year:            2026,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `href="https://meet.example.com/a"`) || !strings.Contains(text, "Date: 2026-11-02") {
		t.Fatalf("rendered invite missing details:\n%s\n%s", html, text)
	}

	msg := string(buildMessage(s.formatFromHeader(), "rahim@example.com", "Interview scheduled: SRE", html, text, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)))
	for _, want := range []string{
		"From: LumiJob <jobs@lumijob.com>\r\n",
		"To: rahim@example.com\r\n",
		"Subject: Interview scheduled: SRE\r\n",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Type: text/html; charset=UTF-8",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}

	if _, err := NewSMTPMailService(SMTPConfig{}); err == nil {
		t.Fatalf("expected error without host")
	}
}
