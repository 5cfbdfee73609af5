package errs

import "strings"

// The mobile app shows these messages directly, so they are localized here
// rather than on the client. Unmapped codes fall back to a generic message.
var friendlyByCode = map[string]string{
	"ID_TOKEN_EXPIRED":        "Tu sesión ha expirado. Inicia sesión de nuevo.",
	"ID_TOKEN_REVOKED":        "Tu sesión fue revocada. Inicia sesión de nuevo.",
	"ID_TOKEN_INVALID":        "No pudimos validar tu sesión. Inicia sesión de nuevo.",
	"USER_NOT_FOUND":          "No encontramos una cuenta con esos datos.",
	"USER_DISABLED":           "Esta cuenta ha sido deshabilitada.",
	"EMAIL_ALREADY_EXISTS":    "Ya existe una cuenta con ese correo.",
	"PHONE_NUMBER_ALREADY_EXISTS": "Ya existe una cuenta con ese teléfono.",
	"INVALID_EMAIL":           "El correo no tiene un formato válido.",
	"PERMISSION_DENIED":       "No tienes permiso para realizar esta acción.",
	"UNAVAILABLE":             "El servicio no está disponible en este momento. Intenta más tarde.",
	"DEADLINE_EXCEEDED":       "La operación tardó demasiado. Intenta de nuevo.",
	"RESOURCE_EXHAUSTED":      "Demasiadas solicitudes. Espera un momento e intenta de nuevo.",
}

const genericFriendly = "Ocurrió un error inesperado. Intenta de nuevo."

const maxFriendlyLen = 120

// Substrings that mark a message as technical rather than user-facing.
var technicalMarkers = []string{
	"rpc error", "http2", "transport", "x509", "oauth2", "googleapi",
	"context deadline", "connection refused", "EOF",
}

// Friendly maps a provider error code to a user-facing message.
func Friendly(code string) string {
	if msg, ok := friendlyByCode[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return msg
	}
	return genericFriendly
}

// FriendlyMessage sanitizes an arbitrary error message for display: mapped
// codes win, technical or overlong messages collapse to the generic fallback,
// anything else passes through truncated.
func FriendlyMessage(code, message string) string {
	if msg, ok := friendlyByCode[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return msg
	}
	if message == "" {
		return genericFriendly
	}
	lower := strings.ToLower(message)
	for _, marker := range technicalMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return genericFriendly
		}
	}
	if len(message) > maxFriendlyLen {
		return message[:maxFriendlyLen] + "…"
	}
	return message
}
