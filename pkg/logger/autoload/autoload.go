// Package autoload initializes the global logger from the LOG_* environment
// when imported for side effect.
package autoload

import (
	configx "github.com/oryxlabs/voiceorder/pkg/config"
	logx "github.com/oryxlabs/voiceorder/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
