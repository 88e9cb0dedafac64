// Package di builds the dependency injection container shared by the API server and the admin CLI.
package di

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/coachdesk/apps/api/echo"
	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
	emailsvc "github.com/trezcool/coachdesk/services/email"
	logsvc "github.com/trezcool/coachdesk/services/logger"
	inmemdb "github.com/trezcool/coachdesk/storage/database/inmem"
	"github.com/trezcool/coachdesk/storage/fixtures"
)

type (
	StoreLoggerParam struct {
		dig.In
		Logger core.Logger `name:"storeLogger"`
	}

	ServerParams struct {
		dig.In
		Conf         *core.Config
		Logger       core.Logger
		StudentSvc   student.Service
		TeacherSvc   teacher.Service
		BatchSvc     batch.Service
		PaymentSvc   payment.Service
		DashboardSvc *dashboard.Service
		Validate     *validator.Validate
		Translator   ut.Translator
		Metrics      *echoapi.Metrics
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))
	return logger
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))
	return logger
}

func newDB(loggerParam StoreLoggerParam) (*inmemdb.DB, error) {
	data, err := fixtures.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading fixtures")
	}
	return inmemdb.Open(data, loggerParam.Logger), nil
}

func newLatency(conf *core.Config) core.Latency {
	return core.NewLatency(conf.Latency)
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newPaymentService(repo payment.Repository, students student.Repository, mailSvc core.EmailService, latency core.Latency) payment.Service {
	return payment.NewService(repo, students, mailSvc, latency)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newMetrics() *echoapi.Metrics {
	return echoapi.NewMetrics(prometheus.DefaultRegisterer)
}

func newServer(p ServerParams) echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		StudentSvc:   p.StudentSvc,
		TeacherSvc:   p.TeacherSvc,
		BatchSvc:     p.BatchSvc,
		PaymentSvc:   p.PaymentSvc,
		DashboardSvc: p.DashboardSvc,
		Validate:     p.Validate,
		Translator:   p.Translator,
		Metrics:      p.Metrics,
	})
}

// New returns a new dependency injection dig.Container.
// conf is provided as is when non nil, otherwise it is loaded with core.NewConfig.
func New(conf *core.Config) *dig.Container {
	c := dig.New()

	if conf != nil {
		must(c.Provide(func() *core.Config { return conf }))
	} else {
		must(c.Provide(core.NewConfig))
	}
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewStudentRepository))
	must(c.Provide(inmemdb.NewTeacherRepository))
	must(c.Provide(inmemdb.NewBatchRepository))
	must(c.Provide(inmemdb.NewPaymentRepository))
	must(c.Provide(newLatency))
	must(c.Provide(newEmailService))
	must(c.Provide(student.NewService))
	must(c.Provide(teacher.NewService))
	must(c.Provide(batch.NewService))
	must(c.Provide(newPaymentService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newMetrics))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
