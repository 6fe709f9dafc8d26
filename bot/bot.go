package bot

import (
	"context"
	"time"

	"pd-bot/bot/job"
	"pd-bot/bot/service"
	"pd-bot/config"
	"pd-bot/logger"

	"github.com/robfig/cron/v3"
)

// Server owns the bot process: the Telegram gateway plus the cron scheduler
// driving the weekly lifecycle. All scheduled times are UTC.
type Server struct {
	cfg *config.Config

	tgbotService *service.Tgbot

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(cfg *config.Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) startTask() {
	// Exchange lifecycle: every Submitted request starts Processing on
	// Thursday, every Processing request completes on Friday.
	s.cron.AddJob("0 0 0 * * 4", job.NewExchangeProcessingJob())
	s.cron.AddJob("0 0 0 * * 5", job.NewExchangeCompletedJob())

	// Monthly activity cleanup on the 1st.
	s.cron.AddJob("0 0 0 1 * *", job.NewActivityPurgeJob())

	// Weekly lottery: draw at the start of Monday, settle last week's
	// winners at 02:50 and announce the results at 03:00.
	s.cron.AddJob("0 0 0 * * 1", job.NewLottoDrawJob())
	s.cron.AddJob("0 50 2 * * 1", job.NewLottoSettleJob(s.tgbotService))
	s.cron.AddJob("0 0 3 * * 1", job.NewLottoAnnounceJob(s.tgbotService))

	// Daily status message every morning.
	s.cron.AddJob("0 0 9 * * *", job.NewDailyReportJob(s.tgbotService))
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			s.Stop()
		}
	}()

	s.tgbotService = service.NewTgbot(s.cfg)
	if err = s.tgbotService.Start(); err != nil {
		return err
	}

	s.cron = cron.New(cron.WithLocation(time.UTC), cron.WithSeconds())
	s.cron.Start()
	s.startTask()

	logger.Infof("%v %v started", config.GetName(), config.GetVersion())
	return nil
}

func (s *Server) Stop() error {
	s.cancel()

	if s.cron != nil {
		s.cron.Stop()
	}
	if s.tgbotService != nil && s.tgbotService.IsRunning() {
		s.tgbotService.Stop()
	}
	return nil
}

func (s *Server) GetCtx() context.Context {
	return s.ctx
}

func (s *Server) GetCron() *cron.Cron {
	return s.cron
}
