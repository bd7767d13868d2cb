package dto

import "time"

// ConnectMailRequest token obtenido por el cliente con el flujo OAuth de Google.
type ConnectMailRequest struct {
	AccessToken  string    `json:"access_token" validate:"required"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
	Scope        string    `json:"scope"`
}

// MailStatusResponse si el usuario tiene cuenta conectada.
type MailStatusResponse struct {
	Connected bool       `json:"connected"`
	Expiry    *time.Time `json:"expiry,omitempty"`
}

// ContactMatchResponse contacto de la empresa presente en un correo.
type ContactMatchResponse struct {
	Kind  string `json:"kind"` // client | supplier
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EmailMessageResponse correo con los contactos reconocidos.
type EmailMessageResponse struct {
	ID       string                 `json:"id"`
	ThreadID string                 `json:"thread_id"`
	From     string                 `json:"from"`
	To       []string               `json:"to"`
	Cc       []string               `json:"cc,omitempty"`
	Subject  string                 `json:"subject"`
	Snippet  string                 `json:"snippet"`
	Date     time.Time              `json:"date"`
	Contacts []ContactMatchResponse `json:"contacts"`
}

// EmailListResponse mensajes recientes.
type EmailListResponse struct {
	Items []EmailMessageResponse `json:"items"`
}

// SendEmailRequest correo a enviar desde la cuenta conectada.
type SendEmailRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Cc      []string `json:"cc" validate:"omitempty,dive,email"`
	Subject string   `json:"subject" validate:"required,max=300"`
	Body    string   `json:"body"`
	HTML    bool     `json:"html"`
}

// SendEmailResponse ID del mensaje enviado.
type SendEmailResponse struct {
	ID string `json:"id"`
}

// CalendarEventRequest alta de evento.
type CalendarEventRequest struct {
	Summary     string    `json:"summary" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
	Attendees   []string  `json:"attendees" validate:"omitempty,dive,email"`
}

// CalendarEventResponse evento de calendario.
type CalendarEventResponse struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees,omitempty"`
	HTMLLink    string    `json:"html_link,omitempty"`
}

// CalendarEventListResponse eventos del rango pedido.
type CalendarEventListResponse struct {
	Items []CalendarEventResponse `json:"items"`
}
