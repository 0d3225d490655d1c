package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"
)

type IMailService interface {
	SendInterviewInvitation(ctx context.Context, to string, invite InterviewInvite) error
}

// InterviewInvite is what a candidate needs to attend a scheduled interview.
type InterviewInvite struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	Date          string
	Time          string
	MeetingLink   string
}

type SMTPConfig struct {
	Host       string
	Port       int // 587 for STARTTLS, 465 with UseSSL
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool

	AppName string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *texttemplate.Template
	now     func() time.Time
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp host and from address are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.AppName == "" {
		cfg.AppName = "LumiJob"
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("inviteHTML").Parse(inviteHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("inviteText").Parse(inviteTextTemplate)),
		now:     time.Now,
	}, nil
}

func (s *smtpMailService) SendInterviewInvitation(ctx context.Context, to string, invite InterviewInvite) error {
	subject := "Interview scheduled"
	if invite.JobTitle != "" {
		subject = "Interview scheduled: " + invite.JobTitle
	}
	html, text, err := s.renderInvite(mailData{InterviewInvite: invite, Title: subject, AppName: s.cfg.AppName, Year: s.now().Year()})
	if err != nil {
		return err
	}
	msg := buildMessage(s.formatFromHeader(), to, subject, html, text, s.now())
	return s.send(ctx, to, msg)
}

type mailData struct {
	InterviewInvite
	Title   string
	AppName string
	Year    int
}

const inviteHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:32px 16px;background:#f1f5f9;font-family:-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif;color:#0f172a">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:12px;overflow:hidden">
    <div style="padding:24px 32px;border-bottom:1px solid #e2e8f0;font-weight:700;color:#2563eb">{{.AppName}}</div>
    <div style="padding:32px">
      <h1 style="margin:0 0 16px;font-size:24px">{{.Title}}</h1>
      <p>Hi {{if .CandidateName}}{{.CandidateName}}{{else}}there{{end}},</p>
      <p>{{if .CompanyName}}{{.CompanyName}}{{else}}The hiring team{{end}} scheduled an interview with you{{if .JobTitle}} for <b>{{.JobTitle}}</b>{{end}}.</p>
      <p><b>Date:</b> {{.Date}}<br><b>Time:</b> {{.Time}}</p>
      {{if .MeetingLink}}<p><a href="{{.MeetingLink}}" style="display:inline-block;padding:12px 24px;background:#2563eb;color:#ffffff;border-radius:8px;text-decoration:none">Join meeting</a></p>
      <p style="font-size:13px;color:#64748b">{{.MeetingLink}}</p>{{end}}
    </div>
    <div style="padding:16px 32px;font-size:13px;color:#64748b;text-align:center">&copy; {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const inviteTextTemplate = `{{.Title}}

{{if .CompanyName}}{{.CompanyName}}{{else}}The hiring team{{end}} scheduled an interview with you{{if .JobTitle}} for {{.JobTitle}}{{end}}.

Date: {{.Date}}
Time: {{.Time}}
{{if .MeetingLink}}Meeting link: {{.MeetingLink}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderInvite(data mailData) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// buildMessage assembles a multipart/alternative message with a plain text
// and an HTML part.
func buildMessage(from, to, subject, htmlBody, textBody string, now time.Time) []byte {
	boundary := fmt.Sprintf("alt_%d", now.UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return errors.New("smtp server does not support STARTTLS")
		}
	}

	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
}
