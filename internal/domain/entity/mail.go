package entity

import "time"

// OAuthCredential token de acceso a Gmail/Calendar de un usuario.
// Se obtiene en el cliente (flujo OAuth del SDK) y se guarda cifrado.
type OAuthCredential struct {
	CompanyID    string
	UserID       string
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
	Scope        string
}

// EmailMessage metadatos de un correo leído de Gmail.
type EmailMessage struct {
	ID       string
	ThreadID string
	From     string
	To       []string
	Cc       []string
	Subject  string
	Snippet  string
	Date     time.Time
}

// OutgoingEmail correo a enviar.
type OutgoingEmail struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
	HTML    bool
}

// CalendarEvent evento de Google Calendar.
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendees   []string
	HTMLLink    string
}

// Tipos de contacto para el emparejamiento de correos.
const (
	ContactKindClient   = "client"
	ContactKindSupplier = "supplier"
)

// ContactMatch contacto de la empresa cuyo email aparece en un mensaje.
type ContactMatch struct {
	Kind  string
	ID    string
	Name  string
	Email string
}
