package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/unitrack/unitrack/core"
	"github.com/unitrack/unitrack/core/academy"
	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
	"github.com/unitrack/unitrack/core/user"
	emailsvc "github.com/unitrack/unitrack/services/email"
	logsvc "github.com/unitrack/unitrack/services/logger"
	"github.com/unitrack/unitrack/storage/blob"
	"github.com/unitrack/unitrack/storage/database/blobdb"
)

var rootCmd = &cobra.Command{
	Use:          "unitrack",
	Short:        "Unitrack academic project tracking API",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd, addUserCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles every dependency the commands need.
type app struct {
	conf       *core.Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator

	db         *blobdb.DB
	usrSvc     *user.Service
	prjSvc     *project.Service
	tskSvc     *task.Service
	noteSvc    *note.Service
	academySvc *academy.Service
}

func newApp() (*app, error) {
	conf := core.NewConfig()

	logger := newLogger(conf)

	store, err := blob.Open(conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %q storage: %w", conf.Storage.Backend, err)
	}
	db := blobdb.Open(store)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	usrRepo := blobdb.NewUserRepository(db)
	prjRepo := blobdb.NewProjectRepository(db)
	tskRepo := blobdb.NewTaskRepository(db)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	project.InitValidators(validate, translator)
	task.InitValidators(validate, translator)

	return &app{
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		db:         db,
		usrSvc:     user.NewService(usrRepo),
		prjSvc:     project.NewService(prjRepo, usrRepo, mailSvc, logger),
		tskSvc:     task.NewService(tskRepo),
		noteSvc:    note.NewService(blobdb.NewNoteRepository(db)),
		academySvc: academy.NewService(blobdb.NewAcademyRepository(db), prjRepo, tskRepo, usrRepo),
	}, nil
}

// newLogger picks zap for local work and Rollbar-backed logging when a
// token is configured.
func newLogger(conf *core.Config) core.Logger {
	if conf.RollbarToken != "" {
		logger := logsvc.NewRollbarLogger(
			stdLogger(),
			conf,
		)
		logger.Enable(!conf.Debug)
		return logger
	}
	return logsvc.NewZapLogger(conf)
}

func stdLogger() *log.Logger {
	return log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
