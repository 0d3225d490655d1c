package mail_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"lumijob/internal/config"
	"lumijob/internal/repositories"
	"lumijob/internal/services"
	"lumijob/pkg/events"
)

// Module mails interview invitations when SMTP is configured by wrapping
// the event publisher.
var Module = fx.Options(
	fx.Provide(provideMailService),
	fx.Decorate(decoratePublisher),
)

func provideMailService(cfg config.Config, logger *zap.Logger) (services.IMailService, error) {
	if cfg.SMTPHost == "" {
		logger.Info("smtp not configured, interview invitations disabled")
		return nil, nil
	}
	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   cfg.SMTPFromName,
		UseSSL:     cfg.SMTPUseSSL,
		RequireTLS: !cfg.SMTPUseSSL,
		AppName:    "LumiJob",
	})
}

func decoratePublisher(
	lc fx.Lifecycle,
	pub events.Publisher,
	mail services.IMailService,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	logger *zap.Logger,
) events.Publisher {
	if mail == nil {
		return pub
	}
	mailer := services.NewInterviewMailer(pub, mail, jobRepo, profileRepo, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			mailer.Wait()
			return nil
		},
	})
	return mailer
}
