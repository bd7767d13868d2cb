package usecase

import "golang.org/x/text/language"

// Nombre de la bodega principal creada con el stock inicial, por idioma.
var mainWarehouseNames = map[string]string{
	"pt": "Armazém Principal",
	"en": "Main Warehouse",
	"es": "Bodega Principal",
	"fr": "Entrepôt principal",
}

// El primero es el idioma por defecto si nada coincide.
var localeMatcher = language.NewMatcher([]language.Tag{
	language.Portuguese,
	language.English,
	language.Spanish,
	language.French,
})

// MainWarehouseName elige el nombre localizado. Acepta cabeceras Accept-Language
// y códigos sueltos, en orden de preferencia.
func MainWarehouseName(prefs ...string) string {
	tag, _ := language.MatchStrings(localeMatcher, prefs...)
	base, _ := tag.Base()
	if name, ok := mainWarehouseNames[base.String()]; ok {
		return name
	}
	return mainWarehouseNames["pt"]
}
