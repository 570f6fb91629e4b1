// File: services/engine/engine.go
package engine

import (
	"context"

	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
)

// HandleTurn processes one inbound message to completion. Every failure path
// resolves to a conversational reply; the engine never propagates a crash to
// the transport.
func (e *DefaultEngine) HandleTurn(ctx context.Context, userID, text string) string {
	logger := utils.GetLogger()
	now := e.now()

	session, err := e.Sessions.Get(ctx, userID)
	if err != nil {
		logger.Error("failed to load session", zap.String("userID", userID), zap.Error(err))
		return msgTechnicalProblem
	}
	if session == nil || session.Expired(now, e.SessionTTL) {
		session = &models.Session{UserID: userID, State: models.StateInitial}
	}
	session.Touch(now)

	var reply string
	switch session.State {
	case models.StateInitial:
		reply = e.handleInitial(ctx, session, text)
	case models.StateRegistering:
		reply = e.handleRegistering(session, text)
	case models.StateConfirmingProfile:
		reply = e.handleConfirmingProfile(ctx, session, text)
	case models.StateConversing:
		reply = e.handleConversing(ctx, session, text)
	default:
		logger.Warn("session in unknown state, resetting",
			zap.String("userID", userID), zap.String("state", session.State))
		session.State = models.StateInitial
		reply = msgAskContact
	}

	if err := e.Sessions.Set(ctx, userID, session); err != nil {
		// The reply is still valid; the next turn just starts fresh.
		logger.Error("failed to persist session", zap.String("userID", userID), zap.Error(err))
	}
	return reply
}
