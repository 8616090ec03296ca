package logging

import (
	"context"
	"fmt"
	"time"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/sirupsen/logrus"
)

func Msg(args ...interface{}) *logrus.Entry {
	entry := logrus.WithFields(logrus.Fields{
		"cts": time.Now().Format(DefaultTimeFormat),
		"rec": "msg",
	})
	if len(args) == 1 {
		switch arg := args[0].(type) {
		case cu.Operation, cu.Operations:
			return entry.WithField("ops", fmt.Sprintf("%s", arg))
		case context.Context:
			return entry.WithField("ops", cu.GetContextOperations(arg).String())
		}
	}
	return entry
}
