package tool

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/oryxlabs/voiceorder/agent/contract"
)

const phraseTransferFailed = "I'm sorry, I couldn't transfer your call right now. I'm still here and happy to keep helping you with your order."

// executeTransferCall is side-effecting only: success carries no payload,
// and failure must leave the caller with speech, never silence.
func executeTransferCall(ctx context.Context, deps Deps) (contractx.ToolResult, error) {
	if deps.CallControl == nil {
		log.Warn().Msg("transfer requested but no call control is configured")
		return contractx.ToolResult{Tool: ToolTransferCall, SpokenText: phraseTransferFailed}, nil
	}
	if err := deps.CallControl.TransferToDialtone(ctx); err != nil {
		log.Error().Err(err).Msg("call transfer failed")
		return contractx.ToolResult{Tool: ToolTransferCall, SpokenText: phraseTransferFailed}, nil
	}
	return contractx.ToolResult{Tool: ToolTransferCall}, nil
}
