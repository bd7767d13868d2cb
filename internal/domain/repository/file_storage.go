package repository

import "context"

// FileStorage almacenamiento de archivos generados (informes, cotizaciones).
// Put devuelve una URL de descarga temporal para la clave escrita.
type FileStorage interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}
