package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrSchemaVersion: el documento persistido tiene una versión de esquema más nueva
	// que la que conoce este binario (no se puede migrar hacia atrás).
	ErrSchemaVersion = errors.New("versión de esquema no soportada")

	// ErrCorruptDocument: un documento leído del almacén no se pudo migrar o no pasa la validación.
	ErrCorruptDocument = errors.New("documento almacenado corrupto")

	// Errores del límite con Gmail/Calendar.
	ErrCredentialExpired  = errors.New("credencial externa expirada o revocada")
	ErrNotConnected       = errors.New("cuenta externa no conectada")
	ErrReconnectRequired  = errors.New("se requiere volver a conectar la cuenta externa")
	ErrStorageUnavailable = errors.New("almacenamiento de archivos no configurado")
)
