package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oryxlabs/voiceorder/agent/cart"
	contractx "github.com/oryxlabs/voiceorder/agent/contract"
	sessionx "github.com/oryxlabs/voiceorder/agent/session"
	toolx "github.com/oryxlabs/voiceorder/agent/tool"
	"github.com/oryxlabs/voiceorder/pkg/callctl"
	configx "github.com/oryxlabs/voiceorder/pkg/config"
	"github.com/oryxlabs/voiceorder/pkg/dialog"
	_ "github.com/oryxlabs/voiceorder/pkg/logger/autoload"
	"github.com/oryxlabs/voiceorder/pkg/store"
)

// CallConfig carries the identifiers the agent runtime hands us when a call
// is answered. The binary wires one session from the environment; the event
// loop, speech, and turn-taking live in the external runtime.
type CallConfig struct {
	RoomName            string `envconfig:"ROOM_NAME" split_words:"true" required:"true"`
	ParticipantIdentity string `envconfig:"PARTICIPANT_IDENTITY" split_words:"true" required:"true"`
	CallerPhone         string `envconfig:"CALLER_PHONE" split_words:"true"`
}

func main() {
	sessionCfg := configx.MustNew[sessionx.Config]("SESSION")
	callCfg := configx.MustNew[CallConfig]("CALL")
	storeCfg := configx.MustNew[store.Config]("SUPABASE")
	callctlCfg := configx.MustNew[callctl.Config]("CALLCTL")
	dialogCfg := configx.MustNew[dialog.Config]("DIALOG")

	db := store.MustNew(*storeCfg)
	defer db.Close()

	info := contractx.SessionInfo{
		RoomName:            callCfg.RoomName,
		ParticipantIdentity: callCfg.ParticipantIdentity,
		LocationID:          sessionCfg.LocationID,
		CallerPhone:         callCfg.CallerPhone,
		AnsweredAt:          time.Now().UTC(),
	}

	transfer, err := callctl.New(*callctlCfg, info)
	if err != nil {
		log.Fatal().Err(err).Msg("build call control client")
	}

	dialogClient := dialog.NewClient(*dialogCfg)
	if dialogClient == nil {
		log.Fatal().Msg("dialog api key is missing")
	}

	sess, err := sessionx.New(*sessionCfg, info, db, db)
	if err != nil {
		log.Fatal().Err(err).Msg("build session")
	}

	ctx := context.Background()
	if err := sess.Begin(ctx); err != nil {
		log.Fatal().Err(err).Msg("start session")
	}

	engine, err := cart.NewEngine(db)
	if err != nil {
		log.Fatal().Err(err).Msg("build cart engine")
	}

	infos, _ := toolx.BuildForSession(toolx.Deps{
		Session:     sess,
		Engine:      engine,
		CallControl: transfer,
	})

	log.Info().
		Str("session_id", sess.ID).
		Str("model", dialogCfg.Model).
		Int("tools", len(infos)).
		Msg("order session ready for the agent runtime")
}
