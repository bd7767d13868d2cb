package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ArchiveResponse resultado de subir un documento generado al almacenamiento de archivos.
type ArchiveResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
