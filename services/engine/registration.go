// File: services/engine/registration.go
package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// handleInitial waits for an identifying contact. A known email moves the
// session straight to conversing, carrying the second-chance flag computed
// from the user's appointment history; an unknown one starts registration.
func (e *DefaultEngine) handleInitial(ctx context.Context, session *models.Session, text string) string {
	logger := utils.GetLogger()

	email := emailPattern.FindString(text)
	if email == "" {
		return msgAskContact
	}
	email = strings.ToLower(email)

	profile, err := e.Users.FindByEmail(email)
	if err != nil {
		logger.Error("user lookup failed", zap.String("email", email), zap.Error(err))
		return msgTechnicalProblem
	}

	if profile == nil {
		session.State = models.StateRegistering
		session.IsNewUser = true
		session.Profile = models.UserProfile{Email: email}
		return msgAskName
	}

	session.State = models.StateConversing
	session.Profile = *profile

	outcome, err := e.Appointments.OutcomeState(email)
	if err != nil {
		// History is advisory here; greet normally and let the recorder
		// re-check before any write.
		logger.Warn("outcome lookup failed", zap.String("email", email), zap.Error(err))
	}
	session.SecondChance = outcome.SecondChance()

	return greeting(*profile, session.SecondChance)
}

// handleRegistering fills profile fields one per turn, in fixed order:
// name, phone, service interest, comment.
func (e *DefaultEngine) handleRegistering(session *models.Session, text string) string {
	answer := strings.TrimSpace(text)
	if answer == "" {
		return msgConfirmAgain
	}

	p := &session.Profile
	switch {
	case p.FullName == "":
		p.FullName = answer
		return msgAskPhone
	case p.Phone == "":
		p.Phone = answer
		return msgAskService
	case p.ServiceInterest == "":
		p.ServiceInterest = answer
		return msgAskComment
	default:
		p.Comment = answer
		session.State = models.StateConfirmingProfile
		return profileSummary(*p)
	}
}

// handleConfirmingProfile awaits a yes/no on the collected profile.
func (e *DefaultEngine) handleConfirmingProfile(ctx context.Context, session *models.Session, text string) string {
	logger := utils.GetLogger()
	res := e.Intents.Classify(text)

	switch {
	case res.Affirmative && !res.Negative:
		if err := e.Users.Save(&session.Profile); err != nil {
			logger.Error("failed to save profile",
				zap.String("email", session.Profile.Email), zap.Error(err))
			return msgTechnicalProblem
		}
		session.State = models.StateConversing
		return "¡Perfecto, " + session.Profile.FullName + "! Quedaste registrado/a. " +
			"¿Te gustaría agendar una asesoría gratuita? Dime qué día y hora te convienen."
	case res.Negative:
		// Keep the identifying contact, clear everything else.
		session.Profile = models.UserProfile{Email: session.Profile.Email}
		session.State = models.StateRegistering
		return msgProfileRetry
	default:
		return msgConfirmAgain
	}
}
