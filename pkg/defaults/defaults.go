// Package defaults embeds the manifests installed on first run.
package defaults

import (
	"embed"
	"os"
)

// Manifest variants.
const (
	VariantKDE   = "kde"
	VariantOther = "other"
)

//go:embed manifests/*.yaml
var manifests embed.FS

// Manifest returns the embedded manifest of a variant.
func Manifest(variant string) ([]byte, error) {
	name := "manifests/conf_other.yaml"
	if variant == VariantKDE {
		name = "manifests/conf_kde.yaml"
	}
	return manifests.ReadFile(name)
}

// DetectVariant picks the KDE manifest when running under a KDE session.
func DetectVariant(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("XDG_CURRENT_DESKTOP") == "KDE" {
		return VariantKDE
	}
	return VariantOther
}
