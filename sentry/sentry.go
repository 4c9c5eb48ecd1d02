package sentry

import (
	"time"

	"github.com/cdnjs/sri-tools/util"

	"github.com/getsentry/sentry-go"
)

// Init Sentry client. Nothing is reported unless SENTRY_DSN is set.
func Init() {
	sentryDsn := util.GetSentryDSN()
	if sentryDsn != "" {
		util.Check(sentry.Init(sentry.ClientOptions{
			Dsn:     sentryDsn,
			Release: "sri-tools@" + util.Version,
		}))
	}
}

// PanicHandler registers panic handler to record the error in Sentry
func PanicHandler() {
	err := recover()

	if err != nil {
		sentry.CurrentHub().Recover(err)
		sentry.Flush(time.Second * 5)
		panic(err)
	}
}
