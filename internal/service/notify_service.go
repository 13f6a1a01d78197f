package service

import (
	"fmt"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyConfig son las credenciales de los canales de notificación. Un canal
// sin credenciales queda deshabilitado y sólo se loguea la advertencia.
type NotifyConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// NotifyService envía confirmaciones por email y SMS. Todo envío es
// best-effort: los fallos se loguean y nunca llegan al caller.
type NotifyService struct {
	cfg NotifyConfig
	log *logrus.Entry
}

func NewNotifyService(cfg NotifyConfig, log *logrus.Logger) *NotifyService {
	if cfg.FromName == "" {
		cfg.FromName = "Concesionaria CAPE"
	}
	return &NotifyService{cfg: cfg, log: log.WithField("component", "notify")}
}

// BookingConfirmed notifica al cliente que su reserva quedó registrada.
func (s *NotifyService) BookingConfirmed(booking entities.Booking, vehicleLabel string) {
	subject := fmt.Sprintf("Tu reserva en CAPE está confirmada - Código: %s", booking.Code)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu reserva quedó registrada.\n\n"+
			"Código de Reserva: %s\n"+
			"Vehículo: %s\n"+
			"Fecha: %s\n\n"+
			"Gracias por elegir Concesionaria CAPE.",
		booking.Name, booking.Code, vehicleLabel, booking.Date,
	)
	s.sendEmail(booking.Email, booking.Name, subject, body)
	s.sendSMS(booking.Phone, fmt.Sprintf("CAPE: reserva %s confirmada para %s.", booking.Code, vehicleLabel))
}

// InquiryReceived notifica al cliente que su consulta fue recibida.
func (s *NotifyService) InquiryReceived(inquiry entities.Inquiry) {
	subject := "Recibimos tu consulta - Concesionaria CAPE"
	body := fmt.Sprintf(
		"Hola %s,\n\nRecibimos tu consulta y te vamos a contactar a la brevedad.\n\n"+
			"Tu mensaje:\n%s\n\n"+
			"Concesionaria CAPE.",
		inquiry.Name, inquiry.Message,
	)
	s.sendEmail(inquiry.Email, inquiry.Name, subject, body)
}

func (s *NotifyService) sendEmail(toAddress, toName, subject, plainText string) {
	if s.cfg.SendGridAPIKey == "" || s.cfg.FromEmail == "" {
		s.log.Warn("SendGrid no está configurado, el correo no se enviará")
		return
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toAddress)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		s.log.WithError(err).WithField("to", toAddress).Warn("falló el envío del correo")
		return
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		s.log.WithFields(logrus.Fields{"to": toAddress, "status": response.StatusCode}).
			Warn("SendGrid devolvió un estado no exitoso")
		return
	}
	s.log.WithFields(logrus.Fields{"to": toAddress, "subject": subject}).Info("correo enviado")
}

func (s *NotifyService) sendSMS(toNumber, body string) {
	if toNumber == "" {
		return
	}
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioFromNumber == "" {
		s.log.Warn("Twilio no está configurado, el SMS no se enviará")
		return
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   s.cfg.TwilioAccountSID,
		Password:   s.cfg.TwilioAuthToken,
		AccountSid: s.cfg.TwilioAccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		s.log.WithError(err).WithField("to", toNumber).Warn("falló el envío del SMS")
		return
	}
	s.log.WithField("to", toNumber).Info("SMS enviado")
}
