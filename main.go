package main

import (
	"fmt"
	"time"

	"paisa/expense-api/app"
	"paisa/expense-api/config"
	"paisa/expense-api/db"
	"paisa/expense-api/internal"
	"paisa/expense-api/internal/service"
	"paisa/expense-api/internal/store"
	"paisa/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	if err := config.Setup(); err != nil {
		panic(err)
	}

	makeLogger()

	conn, err := db.New()
	if err != nil {
		panic(err)
	}

	d := &internal.Deps{
		DB:        conn,
		Users:     store.NewUsers(conn),
		Expenses:  store.NewExpenses(conn),
		Argon:     security.NewArgon(),
		Mailer:    service.NewSMTPMailer(),
		JWTSecret: []byte(viper.GetString("jwt.secret")),
	}

	router := app.NewRouter(d)

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	if err := router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port"))); err != nil {
		panic(err)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
