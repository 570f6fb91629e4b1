// File: services/engine/responses.go
package engine

import (
	"fmt"
	"strings"

	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/services/schedule"
)

// Fixed conversational copy. All user-facing failures stay conversational:
// no internal codes or stack traces ever surface in chat.
const (
	msgAskContact = "¡Hola! 👋 Soy el asistente de ITELSA IA. Para ayudarte, ¿me compartes tu correo electrónico?"

	msgAskName    = "No encontré tu registro, así que vamos a crearlo. ¿Cuál es tu nombre completo?"
	msgAskPhone   = "Gracias. ¿Cuál es tu número de contacto?"
	msgAskService = "¿En qué servicio estás interesado/a?"
	msgAskComment = "¿Quieres dejarnos algún comentario o mensaje adicional?"

	msgProfileRetry = "No hay problema, empecemos de nuevo. ¿Cuál es tu nombre completo?"
	msgConfirmAgain = "¿Me confirmas si los datos están correctos? Respóndeme sí o no."

	msgAskSlot = "¡Claro que sí! ¿Qué día y a qué hora te gustaría tu asesoría? Por ejemplo: mañana a las 3pm."

	msgDeclineClose = "Entiendo, no hay ningún problema. 😊 Si más adelante quieres agendar tu asesoría gratuita, aquí estaré para ayudarte."

	msgTechnicalProblem = "Tuve un pequeño problema técnico, ¿podrías intentarlo de nuevo en un momento? 🙏"

	msgGeneralHelp = "Puedo ayudarte a agendar una asesoría gratuita. Dime qué día y hora te convienen, por ejemplo: mañana a las 10am."
)

// greeting builds the opening line for a recognized user, with the
// second-chance variant for someone whose last outcome was a decline.
func greeting(profile models.UserProfile, secondChance bool) string {
	if secondChance {
		return fmt.Sprintf(
			"¡Qué gusto verte de nuevo, %s! 😊 La última vez no pudimos concretar tu asesoría gratuita. ¿Te gustaría agendarla ahora?",
			profile.FullName)
	}
	return fmt.Sprintf(
		"¡Hola de nuevo, %s! 😊 ¿En qué puedo ayudarte hoy? Puedo agendarte una asesoría gratuita cuando quieras.",
		profile.FullName)
}

// profileSummary renders the collected registration fields for confirmation.
func profileSummary(p models.UserProfile) string {
	var sb strings.Builder
	sb.WriteString("Estos son tus datos:\n")
	sb.WriteString(fmt.Sprintf("• Nombre: %s\n", p.FullName))
	sb.WriteString(fmt.Sprintf("• Correo: %s\n", p.Email))
	sb.WriteString(fmt.Sprintf("• Teléfono: %s\n", p.Phone))
	sb.WriteString(fmt.Sprintf("• Servicio: %s\n", p.ServiceInterest))
	if p.Comment != "" {
		sb.WriteString(fmt.Sprintf("• Comentario: %s\n", p.Comment))
	}
	sb.WriteString("\n¿Están correctos? Respóndeme sí o no.")
	return sb.String()
}

// successMessage confirms a booked slot with a human-readable date.
func (e *DefaultEngine) successMessage(date, timeLabel string) string {
	return fmt.Sprintf(
		"✅ ¡Listo! Tu asesoría quedó agendada para el %s a las %s. Te llegará una invitación a tu correo.",
		schedule.FriendlyDate(date, e.Hours.Location), timeLabel)
}

// rejectionMessage turns an availability rejection into conversational copy,
// listing whatever alternatives the checker attached.
func (e *DefaultEngine) rejectionMessage(result models.AvailabilityResult, date string) string {
	switch result.Reason {
	case models.ReasonInvalidTime:
		return "No logré entender la hora. 🤔 ¿Me la puedes indicar con am o pm? Por ejemplo: mañana a las 3pm."
	case models.ReasonInvalidDate:
		return "No logré entender la fecha. 🤔 ¿Me la puedes repetir? Por ejemplo: mañana a las 3pm."
	case models.ReasonOutsideHours:
		msg := fmt.Sprintf("Ese horario está fuera de nuestro horario de atención (de %s a %s).",
			schedule.FormatTimeLabel(e.Hours.Opening, 0), schedule.FormatTimeLabel(e.Hours.Closing, 0))
		return msg + optionsBlock(result.Alternatives, schedule.FriendlyDate(date, e.Hours.Location))
	case models.ReasonNonBusinessDay:
		friendly := schedule.FriendlyDate(result.AlternativeDate, e.Hours.Location)
		msg := fmt.Sprintf("Ese día no tenemos atención. El siguiente día hábil es el %s.", friendly)
		return msg + optionsBlock(result.Alternatives, friendly)
	case models.ReasonSlotConflict:
		friendly := schedule.FriendlyDate(date, e.Hours.Location)
		msg := fmt.Sprintf("Ese horario ya está ocupado para el %s. 😕", friendly)
		return msg + optionsBlock(result.Alternatives, friendly)
	default:
		return msgTechnicalProblem
	}
}

// optionsBlock renders a numbered list of alternative slots, or a no-slots
// note when the day is full.
func optionsBlock(times []string, friendlyDate string) string {
	if len(times) == 0 {
		return " Ese día no tenemos espacios libres. ¿Quieres intentar con otra fecha?"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(" Para el %s tengo estos espacios:\n", friendlyDate))
	for i, t := range times {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}
	sb.WriteString("\nRespóndeme con el número de la opción que prefieras.")
	return sb.String()
}

// repeatOptions re-lists the pending alternatives when a reply matched
// nothing.
func repeatOptions(pending *models.PendingOptions) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Estas son las opciones que tengo para el %s:\n", pending.DateLabel))
	for i, t := range pending.Times {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}
	sb.WriteString("\nRespóndeme con el número de la opción, o dime otra fecha y hora.")
	return sb.String()
}
